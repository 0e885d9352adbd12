package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zitheke_dev_v1/internal/api/dto"
	"zitheke_dev_v1/internal/middleware"
	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/repository"
	"zitheke_dev_v1/internal/service"
)

// ==================== Reports ====================

type ReportController struct {
	reports *service.ReportService
	log     *zap.Logger
}

func NewReportController(reports *service.ReportService, log *zap.Logger) *ReportController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportController{reports: reports, log: log.Named("ReportController")}
}

// File reports an ad
// @Summary Report an ad
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FileReportReq true "report"
// @Success 200 {object} model.Report
// @Failure 400 {object} map[string]interface{} "unknown reason"
// @Router /api/reports [post]
func (r *ReportController) File(c *gin.Context) {
	var req dto.FileReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	report, err := r.reports.File(c.Request.Context(), middleware.GetIdentity(c), req.AdID, req.Reason, req.Details)
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	success(c, report)
}

// Reasons lists the accepted report reasons
// @Summary Report reasons
// @Tags Reports
// @Produce json
// @Success 200 {array} string
// @Router /api/reports/reasons [get]
func (r *ReportController) Reasons(c *gin.Context) {
	success(c, model.ReportReasons)
}

// Board returns the open reports
// @Summary Open reports
// @Description Pending and reviewing reports, oldest first.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Report
// @Router /api/admin/reports/open [get]
func (r *ReportController) Board(c *gin.Context) {
	list, err := r.reports.Board(c.Request.Context())
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	success(c, list)
}

// List queries reports
// @Summary List reports
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, reviewing, resolved or dismissed"
// @Param ad_id query string false "ad id"
// @Param page query int false "page (default 1)"
// @Param page_size query int false "page size (default 20)"
// @Success 200 {object} dto.PageResp
// @Router /api/admin/reports [get]
func (r *ReportController) List(c *gin.Context) {
	filter := repository.ReportFilter{
		Status:   model.ReportStatus(c.Query("status")),
		AdID:     c.Query("ad_id"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		badRequest(c, "invalid status")
		return
	}

	list, total, err := r.reports.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	success(c, dto.PageResp{List: list, Total: total, Page: filter.Page, PageSize: filter.PageSize})
}

// UpdateStatus moves a report through moderation
// @Summary Change report status
// @Description The change is shown at once and rolled back if it cannot be saved.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "report id"
// @Param request body dto.UpdateReportStatusReq true "new status"
// @Success 200 {object} model.Report
// @Failure 404 {object} map[string]interface{} "unknown report"
// @Failure 409 {object} map[string]interface{} "busy, conflicting or invalid transition"
// @Router /api/admin/reports/{id}/status [patch]
func (r *ReportController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	var req dto.UpdateReportStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	report, err := r.reports.UpdateStatus(c.Request.Context(), id, model.ReportStatus(req.Status), middleware.GetIdentity(c), req.Note)
	if err != nil {
		respondError(c, r.log, err)
		return
	}
	success(c, report)
}

// ==================== Submissions ====================

type SubmissionController struct {
	submissions repository.SubmissionRepository
	log         *zap.Logger
}

func NewSubmissionController(submissions repository.SubmissionRepository, log *zap.Logger) *SubmissionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionController{submissions: submissions, log: log.Named("SubmissionController")}
}

// List queries publish attempts
// @Summary List submissions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param owner_uid query string false "owner uid"
// @Param category query string false "category"
// @Param status query string false "success or failed"
// @Param page query int false "page (default 1)"
// @Param page_size query int false "page size (default 20)"
// @Success 200 {object} dto.PageResp
// @Router /api/admin/submissions [get]
func (s *SubmissionController) List(c *gin.Context) {
	filter := repository.SubmissionFilter{
		OwnerUID:  c.Query("owner_uid"),
		SessionID: c.Query("session_id"),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
	}

	list, total, err := s.submissions.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, s.log, err)
		return
	}
	success(c, dto.PageResp{List: list, Total: total, Page: filter.Page, PageSize: filter.PageSize})
}

// Get returns one publish attempt
// @Summary Get a submission
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission id"
// @Success 200 {object} model.SubmissionRecord
// @Failure 404 {object} map[string]interface{} "not found"
// @Router /api/admin/submissions/{id} [get]
func (s *SubmissionController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	rec, err := s.submissions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "submission not found", nil)
			return
		}
		respondError(c, s.log, err)
		return
	}
	success(c, rec)
}

// Stats summarizes recent publish attempts
// @Summary Submission statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param days query int false "window in days (default 7)"
// @Success 200 {object} repository.SubmissionStats
// @Router /api/admin/submissions/stats [get]
func (s *SubmissionController) Stats(c *gin.Context) {
	days := queryInt(c, "days", 7)
	if days <= 0 {
		days = 7
	}

	end := time.Now()
	stats, err := s.submissions.GetStats(c.Request.Context(), end.AddDate(0, 0, -days), end)
	if err != nil {
		respondError(c, s.log, err)
		return
	}
	success(c, stats)
}
