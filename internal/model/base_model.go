package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel holds the columns shared by every persisted entity.
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// --- audit, filled from the request identity ---
	CreatedBy string `gorm:"size:128;comment:creator uid" json:"created_by"`
	UpdatedBy string `gorm:"size:128;comment:last editor uid" json:"updated_by"`
}
