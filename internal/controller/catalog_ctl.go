package controller

import (
	"github.com/gin-gonic/gin"

	"zitheke_dev_v1/internal/api/dto"
	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/service"
)

type CatalogController struct {
	limits service.MediaLimits
}

func NewCatalogController(limits service.MediaLimits) *CatalogController {
	return &CatalogController{limits: limits}
}

// Categories lists the categories with their extra fields
// @Summary Category catalog
// @Description Categories, their field schemas and subcategories, the condition options and the media limits.
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.CatalogResp
// @Router /api/catalog/categories [get]
func (ctl *CatalogController) Categories(c *gin.Context) {
	categories := model.Categories()
	list := make([]dto.CategoryResp, 0, len(categories))
	for _, cat := range categories {
		list = append(list, dto.CategoryResp{
			Name:          string(cat),
			NoPrice:       model.IsNoPriceCategory(cat),
			Fields:        model.SchemaFor(cat),
			Subcategories: model.Subcategories(cat),
		})
	}

	success(c, dto.CatalogResp{
		Categories: list,
		Conditions: []string{
			string(model.ConditionNew),
			string(model.ConditionUsed),
			string(model.ConditionNotApplicable),
		},
		Limits: dto.MediaLimitsResp{
			MaxImages:           ctl.limits.MaxImages,
			MaxImageBytes:       ctl.limits.MaxImageBytes,
			MaxVideoBytes:       ctl.limits.MaxVideoBytes,
			MaxVideoDurationSec: ctl.limits.MaxVideoDuration.Seconds(),
		},
	})
}
