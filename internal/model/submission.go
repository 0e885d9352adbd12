package model

import "gorm.io/datatypes"

// ==================== Status ====================

const (
	SubmissionStatusSuccess = "success"
	SubmissionStatusFailed  = "failed"
)

// SubmissionRecord is one attempt to publish a wizard draft to the marketplace.
type SubmissionRecord struct {
	BaseModel
	SessionID     string         `gorm:"size:64;index" json:"session_id"`
	OwnerUID      string         `gorm:"size:128;index" json:"owner_uid"`
	Title         string         `gorm:"size:255" json:"title"`
	Category      string         `gorm:"size:64;index" json:"category"`
	ImageCount    int            `json:"image_count"`
	HasVideo      bool           `json:"has_video"`
	Status        string         `gorm:"size:16;index" json:"status"`
	ServerMessage string         `gorm:"size:1024" json:"server_message,omitempty"`
	DurationMs    int64          `json:"duration_ms"`
	Fields        datatypes.JSON `json:"fields"`
}

func (SubmissionRecord) TableName() string {
	return "submission_records"
}
