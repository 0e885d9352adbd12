package model

import "errors"

// ErrInvalidTransition is returned for a status change the moderation flow forbids.
var ErrInvalidTransition = errors.New("invalid report status transition")

// ==================== Status ====================

// ReportStatus is the moderation state of a user report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending:   {ReportStatusReviewing, ReportStatusResolved, ReportStatusDismissed},
	ReportStatusReviewing: {ReportStatusResolved, ReportStatusDismissed},
}

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewing, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s ReportStatus) Terminal() bool {
	return len(reportTransitions[s]) == 0
}

// CanTransition reports whether a report may move from s to next.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	for _, allowed := range reportTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ==================== Report ====================

// Report is a user complaint about a listing, triaged from the admin dashboard.
type Report struct {
	BaseModel
	AdID           string       `gorm:"size:64;index;not null" json:"ad_id"`
	ReporterUID    string       `gorm:"size:128;index" json:"reporter_uid"`
	Reason         string       `gorm:"size:64;not null" json:"reason"`
	Details        string       `gorm:"size:2000" json:"details"`
	Status         ReportStatus `gorm:"size:16;index;not null;default:pending" json:"status"`
	ResolvedBy     string       `gorm:"size:128" json:"resolved_by,omitempty"`
	ResolutionNote string       `gorm:"size:1000" json:"resolution_note,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// ==================== Reasons ====================

// ReportReasons are the complaint categories offered on the storefront.
var ReportReasons = []string{"scam", "spam", "prohibited_item", "wrong_category", "duplicate", "offensive", "other"}
