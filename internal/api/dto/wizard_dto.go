package dto

import (
	"time"

	"zitheke_dev_v1/internal/model"
)

// ==================== Requests ====================

// ChangeFieldReq is one input change on the wizard form.
type ChangeFieldReq struct {
	Name       string `json:"name" binding:"required"`
	Value      string `json:"value"`
	IsCheckbox bool   `json:"is_checkbox"` // value is read as "true"/"false"
}

// ChangeCategoryReq switches the draft's category. An empty category clears it.
type ChangeCategoryReq struct {
	Category string `json:"category"`
}

// ==================== Responses ====================

// MediaResp describes one staged file and its preview.
type MediaResp struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"size"`
	DurationSec float64 `json:"duration_sec,omitempty"`
	PreviewURL  string  `json:"preview_url"`
}

// SessionResp is the full wizard state rendered by the storefront.
type SessionResp struct {
	ID         string                  `json:"id"`
	Step       int                     `json:"step"`
	StepName   string                  `json:"step_name"`
	Common     model.CommonFields      `json:"common"`
	Extra      map[string]string       `json:"extra"`
	Schema     []model.FieldDescriptor `json:"schema"`
	NoPrice    bool                    `json:"no_price"` // price is derived from the salary field
	Images     []MediaResp             `json:"images"`
	Video      *MediaResp              `json:"video,omitempty"`
	Submitting bool                    `json:"submitting"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
	MaxImages  int                     `json:"max_images"`
	ImagesLeft int                     `json:"images_left"`
}

// SubmitResp is returned when the marketplace accepted the ad.
type SubmitResp struct {
	SessionID string `json:"session_id"`
	Redirect  string `json:"redirect"`
}

// CategoryResp is one entry of the category catalog.
type CategoryResp struct {
	Name          string                  `json:"name"`
	NoPrice       bool                    `json:"no_price"`
	Fields        []model.FieldDescriptor `json:"fields"`
	Subcategories []string                `json:"subcategories"`
}

// MediaLimitsResp tells the storefront what it may upload.
type MediaLimitsResp struct {
	MaxImages           int     `json:"max_images"`
	MaxImageBytes       int64   `json:"max_image_bytes"`
	MaxVideoBytes       int64   `json:"max_video_bytes"`
	MaxVideoDurationSec float64 `json:"max_video_duration_sec"`
}

// CatalogResp bundles categories and media limits.
type CatalogResp struct {
	Categories []CategoryResp  `json:"categories"`
	Conditions []string        `json:"conditions"`
	Limits     MediaLimitsResp `json:"limits"`
}
