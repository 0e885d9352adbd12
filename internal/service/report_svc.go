package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/repository"
	"zitheke_dev_v1/pkg/optimistic"
)

var ErrInvalidReportReason = errors.New("unknown report reason")

// ReportService files user reports and drives their moderation. Open reports
// are kept on an in-memory board; status changes are shown on the board at
// once and rolled back when the database update fails.
type ReportService struct {
	repo repository.ReportRepository
	log  *zap.Logger

	mu       sync.Mutex
	loaded   bool
	board    map[int64]*model.Report
	inflight map[int64]bool
}

func NewReportService(repo repository.ReportRepository, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{
		repo:     repo,
		log:      log.Named("ReportService"),
		board:    make(map[int64]*model.Report),
		inflight: make(map[int64]bool),
	}
}

// File records a new report against an ad.
func (s *ReportService) File(ctx context.Context, who model.Identity, adID, reason, details string) (*model.Report, error) {
	adID = strings.TrimSpace(adID)
	if adID == "" {
		return nil, fmt.Errorf("%w: ad id is required", ErrInvalidReportReason)
	}
	if !lo.Contains(model.ReportReasons, reason) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReportReason, reason)
	}

	report := &model.Report{
		AdID:        adID,
		ReporterUID: who.ID,
		Reason:      reason,
		Details:     strings.TrimSpace(details),
		Status:      model.ReportStatusPending,
	}
	report.CreatedBy = who.ID
	report.UpdatedBy = who.ID

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.mu.Lock()
	if s.loaded {
		cp := *report
		s.board[report.ID] = &cp
	}
	s.mu.Unlock()

	s.log.Info("report filed", zap.Int64("report", report.ID), zap.String("ad", adID), zap.String("reason", reason))
	return report, nil
}

// Board returns the open reports, oldest first.
func (s *ReportService) Board(ctx context.Context) ([]model.Report, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Report, 0, len(s.board))
	for _, r := range s.board {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// List queries every report, open or closed.
func (s *ReportService) List(ctx context.Context, filter repository.ReportFilter) ([]model.Report, int64, error) {
	return s.repo.List(ctx, filter)
}

// Reload drops the board and reads it again from the database.
func (s *ReportService) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return s.ensureLoaded(ctx)
}

// UpdateStatus moves a report to next. Only one change per report may be
// pending at a time; a concurrent change gets ErrReportBusy.
func (s *ReportService) UpdateStatus(ctx context.Context, id int64, next model.ReportStatus, who model.Identity, note string) (*model.Report, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidTransition, next)
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	entry, err := s.acquire(ctx, id, next)
	if err != nil {
		return nil, err
	}
	defer s.release(id)

	err = optimistic.Run(&entry.Status, &s.mu, next, func(previous model.ReportStatus) error {
		return s.repo.TransitionStatus(ctx, id, previous, next, who.ID, note)
	})

	switch {
	case errors.Is(err, repository.ErrStatusConflict):
		s.log.Info("report changed concurrently", zap.Int64("report", id))
		s.refresh(ctx, id)
		return nil, ErrReportConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.forget(id)
		return nil, ErrReportNotFound
	case err != nil:
		s.log.Warn("report status update failed, rolled back", zap.Int64("report", id), zap.Error(err))
		return nil, fmt.Errorf("update report status: %w", err)
	}

	s.mu.Lock()
	entry.ResolvedBy = who.ID
	entry.UpdatedBy = who.ID
	entry.ResolutionNote = note
	out := *entry
	if next.Terminal() {
		delete(s.board, id)
	}
	s.mu.Unlock()

	s.log.Info("report status changed", zap.Int64("report", id), zap.String("status", string(next)), zap.String("by", who.ID))
	return &out, nil
}

// ==================== Helpers ====================

func (s *ReportService) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}

	open, err := s.repo.ListOpen(ctx)
	if err != nil {
		return fmt.Errorf("load report board: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	board := make(map[int64]*model.Report, len(open))
	for i := range open {
		board[open[i].ID] = &open[i]
	}
	// keep entries whose change is still in flight
	for id := range s.inflight {
		if cur, ok := s.board[id]; ok {
			board[id] = cur
		}
	}
	s.board = board
	s.loaded = true
	return nil
}

func (s *ReportService) acquire(ctx context.Context, id int64, next model.ReportStatus) (*model.Report, error) {
	s.mu.Lock()
	if s.inflight[id] {
		s.mu.Unlock()
		return nil, ErrReportBusy
	}
	entry, ok := s.board[id]
	s.mu.Unlock()

	if !ok {
		// closed reports are not on the board; read them for a proper error
		r, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("get report: %w", err)
		}
		if !r.Status.CanTransition(next) {
			return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, r.Status, next)
		}
		s.mu.Lock()
		if cur, exists := s.board[id]; exists {
			entry = cur
		} else {
			entry = r
			s.board[id] = r
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return nil, ErrReportBusy
	}
	if !entry.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, entry.Status, next)
	}
	s.inflight[id] = true
	return entry, nil
}

func (s *ReportService) release(id int64) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}

func (s *ReportService) refresh(ctx context.Context, id int64) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("refresh report failed", zap.Int64("report", id), zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Status.Terminal() {
		delete(s.board, id)
		return
	}
	s.board[id] = r
}

func (s *ReportService) forget(id int64) {
	s.mu.Lock()
	delete(s.board, id)
	s.mu.Unlock()
}
