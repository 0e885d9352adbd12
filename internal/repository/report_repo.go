package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zitheke_dev_v1/internal/model"
)

// ErrStatusConflict means the row no longer had the expected status.
var ErrStatusConflict = errors.New("report status changed concurrently")

// ==================== Interface ====================

// ReportRepository persists user reports for moderation.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id int64) (*model.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]model.Report, int64, error)
	ListOpen(ctx context.Context) ([]model.Report, error)

	// TransitionStatus moves a report from expected to next only if it still
	// has status expected. It returns ErrStatusConflict otherwise.
	TransitionStatus(ctx context.Context, id int64, expected, next model.ReportStatus, resolvedBy, note string) error
}

// ReportFilter narrows List. Zero values do not filter.
type ReportFilter struct {
	Status   model.ReportStatus
	AdID     string
	Page     int
	PageSize int
}

// ==================== Implementation ====================

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	if report.Status == "" {
		report.Status = model.ReportStatusPending
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, filter ReportFilter) ([]model.Report, int64, error) {
	var list []model.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AdID != "" {
		query = query.Where("ad_id = ?", filter.AdID)
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

func (r *reportRepo) ListOpen(ctx context.Context) ([]model.Report, error) {
	var list []model.Report
	err := r.db.WithContext(ctx).
		Where("status IN ?", []model.ReportStatus{model.ReportStatusPending, model.ReportStatusReviewing}).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *reportRepo) TransitionStatus(ctx context.Context, id int64, expected, next model.ReportStatus, resolvedBy, note string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Report
		// SELECT ... FOR UPDATE on postgres; sqlite ignores the locking clause.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, id).Error; err != nil {
			return err
		}
		if current.Status != expected {
			return ErrStatusConflict
		}

		res := tx.Model(&model.Report{}).
			Where("id = ? AND status = ?", id, expected).
			Updates(map[string]interface{}{
				"status":          next,
				"resolved_by":     resolvedBy,
				"resolution_note": note,
				"updated_by":      resolvedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return nil
	})
}
