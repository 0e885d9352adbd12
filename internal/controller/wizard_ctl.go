package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zitheke_dev_v1/internal/api/dto"
	"zitheke_dev_v1/internal/middleware"
	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/service"
)

const (
	formImages = "images"
	formVideo  = "video"

	// room for multipart headers and boundaries on top of the file bytes
	multipartOverhead = 1 << 20
)

type WizardController struct {
	wizard *service.WizardService
	log    *zap.Logger
}

func NewWizardController(wizard *service.WizardService, log *zap.Logger) *WizardController {
	if log == nil {
		log = zap.NewNop()
	}
	return &WizardController{wizard: wizard, log: log.Named("WizardController")}
}

// ==================== Session ====================

// Open starts a new wizard
// @Summary Start an ad-posting wizard
// @Tags Wizard
// @Produce json
// @Success 200 {object} dto.SessionResp
// @Router /api/wizard/sessions [post]
func (w *WizardController) Open(c *gin.Context) {
	view, err := w.wizard.Open(c.Request.Context())
	if err != nil {
		respondError(c, w.log, err)
		return
	}
	success(c, w.toResponse(view))
}

// Get returns the wizard state
// @Summary Get wizard state
// @Tags Wizard
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} dto.SessionResp
// @Failure 404 {object} map[string]interface{} "unknown session"
// @Router /api/wizard/sessions/{id} [get]
func (w *WizardController) Get(c *gin.Context) {
	view, err := w.wizard.Get(c.Request.Context(), c.Param("id"))
	w.respondView(c, view, err)
}

// Discard drops the wizard and its previews
// @Summary Discard a wizard
// @Tags Wizard
// @Param id path string true "session id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "unknown session"
// @Router /api/wizard/sessions/{id} [delete]
func (w *WizardController) Discard(c *gin.Context) {
	if err := w.wizard.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, w.log, err)
		return
	}
	success(c, nil)
}

// ==================== Form ====================

// ChangeField applies one input change
// @Summary Change a form field
// @Description Common fields and the current category's extra fields are accepted. Checkbox values are "true" or "false".
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body dto.ChangeFieldReq true "field change"
// @Success 200 {object} dto.SessionResp
// @Failure 400 {object} map[string]interface{} "unknown field or option"
// @Router /api/wizard/sessions/{id}/fields [patch]
func (w *WizardController) ChangeField(c *gin.Context) {
	var req dto.ChangeFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := w.wizard.ChangeField(c.Request.Context(), c.Param("id"), req.Name, req.Value, req.IsCheckbox)
	w.respondView(c, view, err)
}

// ChangeCategory switches the category
// @Summary Change the ad category
// @Description Fields of the previous category are cleared.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body dto.ChangeCategoryReq true "category"
// @Success 200 {object} dto.SessionResp
// @Failure 400 {object} map[string]interface{} "unknown category"
// @Router /api/wizard/sessions/{id}/category [put]
func (w *WizardController) ChangeCategory(c *gin.Context) {
	var req dto.ChangeCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := w.wizard.ChangeCategory(c.Request.Context(), c.Param("id"), model.Category(req.Category))
	w.respondView(c, view, err)
}

// ==================== Navigation ====================

// Next advances one step
// @Summary Go to the next step
// @Tags Wizard
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} dto.SessionResp
// @Failure 422 {object} map[string]interface{} "step gate failed"
// @Router /api/wizard/sessions/{id}/next [post]
func (w *WizardController) Next(c *gin.Context) {
	view, err := w.wizard.Next(c.Request.Context(), c.Param("id"))
	w.respondView(c, view, err)
}

// Back returns one step
// @Summary Go to the previous step
// @Tags Wizard
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} dto.SessionResp
// @Router /api/wizard/sessions/{id}/back [post]
func (w *WizardController) Back(c *gin.Context) {
	view, err := w.wizard.Back(c.Request.Context(), c.Param("id"))
	w.respondView(c, view, err)
}

// ==================== Media ====================

// AddImages stages a batch of images
// @Summary Add images
// @Description All files of the batch are accepted or none is.
// @Tags Wizard
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "session id"
// @Param images formData file true "image files"
// @Success 200 {object} dto.SessionResp
// @Failure 413 {object} map[string]interface{} "request body too large"
// @Failure 422 {object} map[string]interface{} "limit, size or type violated"
// @Router /api/wizard/sessions/{id}/images [post]
func (w *WizardController) AddImages(c *gin.Context) {
	limits := w.wizard.Limits()
	limitBody(c, int64(limits.MaxImages)*limits.MaxImageBytes)

	form, err := c.MultipartForm()
	if err != nil {
		uploadError(c, err, "multipart form expected")
		return
	}

	headers := form.File[formImages]
	if len(headers) == 0 {
		badRequest(c, "no images selected")
		return
	}

	files := make([]model.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if werr := limits.CheckImageSize(fh.Filename, fh.Size); werr != nil {
			respondError(c, w.log, werr)
			return
		}
		f, err := readUpload(fh)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		files = append(files, f)
	}

	view, err := w.wizard.StageImages(c.Request.Context(), c.Param("id"), files)
	w.respondView(c, view, err)
}

// RemoveImage drops one staged image
// @Summary Remove an image
// @Tags Wizard
// @Produce json
// @Param id path string true "session id"
// @Param index path int true "image position, starting at 0"
// @Success 200 {object} dto.SessionResp
// @Router /api/wizard/sessions/{id}/images/{index} [delete]
func (w *WizardController) RemoveImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "invalid index")
		return
	}

	view, err := w.wizard.RemoveImage(c.Request.Context(), c.Param("id"), index)
	w.respondView(c, view, err)
}

// SetVideo stages the video, replacing the current one
// @Summary Set the video
// @Description One video of at most 30MB and 30 seconds.
// @Tags Wizard
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "session id"
// @Param video formData file true "video file"
// @Success 200 {object} dto.SessionResp
// @Failure 409 {object} map[string]interface{} "superseded by a newer selection"
// @Failure 413 {object} map[string]interface{} "request body too large"
// @Failure 422 {object} map[string]interface{} "size, duration or type violated"
// @Router /api/wizard/sessions/{id}/video [put]
func (w *WizardController) SetVideo(c *gin.Context) {
	limits := w.wizard.Limits()
	limitBody(c, limits.MaxVideoBytes)

	fh, err := c.FormFile(formVideo)
	if err != nil {
		uploadError(c, err, "no video selected")
		return
	}
	if werr := limits.CheckVideoSize(fh.Size); werr != nil {
		respondError(c, w.log, werr)
		return
	}

	f, err := readUpload(fh)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := w.wizard.StageVideo(c.Request.Context(), c.Param("id"), f)
	w.respondView(c, view, err)
}

// RemoveVideo drops the staged video
// @Summary Remove the video
// @Tags Wizard
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} dto.SessionResp
// @Router /api/wizard/sessions/{id}/video [delete]
func (w *WizardController) RemoveVideo(c *gin.Context) {
	view, err := w.wizard.RemoveVideo(c.Request.Context(), c.Param("id"))
	w.respondView(c, view, err)
}

// ==================== Submit ====================

// Submit publishes the ad
// @Summary Submit the ad
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} dto.SubmitResp
// @Failure 401 {object} map[string]interface{} "not logged in"
// @Failure 409 {object} map[string]interface{} "submission already in progress"
// @Failure 422 {object} map[string]interface{} "location or images missing"
// @Failure 502 {object} map[string]interface{} "marketplace rejected the ad"
// @Router /api/wizard/sessions/{id}/submit [post]
func (w *WizardController) Submit(c *gin.Context) {
	result, err := w.wizard.Submit(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, w.log, err)
		return
	}

	success(c, dto.SubmitResp{SessionID: result.SessionID, Redirect: result.Redirect})
}

// ==================== Helpers ====================

func (w *WizardController) respondView(c *gin.Context, view *service.SessionView, err error) {
	if err != nil {
		respondError(c, w.log, err)
		return
	}
	success(c, w.toResponse(view))
}

func (w *WizardController) toResponse(v *service.SessionView) dto.SessionResp {
	limits := w.wizard.Limits()

	images := make([]dto.MediaResp, 0, len(v.Images))
	for _, img := range v.Images {
		images = append(images, toMediaResp(img))
	}

	resp := dto.SessionResp{
		ID:         v.ID,
		Step:       int(v.Step),
		StepName:   v.Step.String(),
		Common:     v.Draft,
		Extra:      v.Extra,
		Schema:     v.Schema,
		NoPrice:    model.IsNoPriceCategory(v.Draft.Category),
		Images:     images,
		Submitting: v.Submitting,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		MaxImages:  limits.MaxImages,
		ImagesLeft: limits.MaxImages - len(images),
	}
	if v.Video != nil {
		video := toMediaResp(*v.Video)
		resp.Video = &video
	}
	return resp
}

func toMediaResp(f model.StagedFile) dto.MediaResp {
	return dto.MediaResp{
		ID:          f.ID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		DurationSec: f.Duration.Seconds(),
		PreviewURL:  f.PreviewURL,
	}
}

// limitBody caps the request body so an oversized upload fails while the
// form is parsed instead of after it was buffered.
func limitBody(c *gin.Context, fileBytes int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fileBytes+multipartOverhead)
}

func uploadError(c *gin.Context, err error, msg string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, "upload is too large", nil)
		return
	}
	badRequest(c, msg)
}

func readUpload(fh *multipart.FileHeader) (model.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return model.UploadedFile{Filename: fh.Filename, Data: data}, nil
}
