package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"zitheke_dev_v1/internal/model"
)

// ==================== Interface ====================

// SubmissionRepository stores the outcome of every publish attempt.
type SubmissionRepository interface {
	Create(ctx context.Context, rec *model.SubmissionRecord) error
	GetByID(ctx context.Context, id int64) (*model.SubmissionRecord, error)
	List(ctx context.Context, filter SubmissionFilter) ([]model.SubmissionRecord, int64, error)
	GetStats(ctx context.Context, startTime, endTime time.Time) (*SubmissionStats, error)
}

// SubmissionFilter narrows List. Zero values do not filter.
type SubmissionFilter struct {
	OwnerUID  string
	SessionID string
	Category  string
	Status    string
	Page      int
	PageSize  int
}

// SubmissionStats summarizes attempts for the admin dashboard.
type SubmissionStats struct {
	TotalAttempts int64   `json:"total_attempts"`
	SuccessCount  int64   `json:"success_count"`
	FailedCount   int64   `json:"failed_count"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// ==================== Implementation ====================

type submissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, rec *model.SubmissionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id int64) (*model.SubmissionRecord, error) {
	var rec model.SubmissionRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *submissionRepo) List(ctx context.Context, filter SubmissionFilter) ([]model.SubmissionRecord, int64, error) {
	var list []model.SubmissionRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&model.SubmissionRecord{})

	if filter.OwnerUID != "" {
		query = query.Where("owner_uid = ?", filter.OwnerUID)
	}
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC, id DESC").Limit(filter.PageSize).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *submissionRepo) GetStats(ctx context.Context, startTime, endTime time.Time) (*SubmissionStats, error) {
	var stats SubmissionStats

	query := r.db.WithContext(ctx).Model(&model.SubmissionRecord{})
	if !startTime.IsZero() {
		query = query.Where("created_at >= ?", startTime)
	}
	if !endTime.IsZero() {
		query = query.Where("created_at <= ?", endTime)
	}

	err := query.Select(`
		COUNT(*) as total_attempts,
		COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as success_count,
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed_count,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms
	`).Scan(&stats).Error

	return &stats, err
}
