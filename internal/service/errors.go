package service

import (
	"errors"
	"fmt"
)

// ==================== Error kinds ====================

// ErrorKind classifies a failure the wizard reports back to the user.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindMedia      ErrorKind = "media"
	KindSubmission ErrorKind = "submission"
	KindIdentity   ErrorKind = "identity"
)

// Rule names, one per user-facing message.
const (
	RuleTitleLength       = "title_length"
	RuleDescriptionLength = "description_length"
	RuleCategoryRequired  = "category_required"
	RulePricePositive     = "price_positive"
	RuleImageRequired     = "image_required"
	RuleCityLength        = "city_length"
	RuleLocationLength    = "location_length"
	RuleStepIncomplete    = "step_incomplete"
	RuleImageLimit        = "image_limit"
	RuleImageSize         = "image_size"
	RuleImageType         = "image_type"
	RuleImageIndex        = "image_index"
	RuleVideoSize         = "video_size"
	RuleVideoDuration     = "video_duration"
	RuleVideoType         = "video_type"
	RuleVideoProbe        = "video_probe"
	RuleIdentityRequired  = "identity_required"
	RuleServerRejected    = "server_rejected"
	RuleServerUnavailable = "server_unavailable"
)

// GenericSubmissionMessage is shown when the server gives no reason.
const GenericSubmissionMessage = "Failed to create ad. Please try again."

var (
	ErrSessionNotFound    = errors.New("wizard session not found")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrStaleVideoProbe    = errors.New("video probe superseded by a newer selection")
	ErrReportNotFound     = errors.New("report not found")
	ErrReportBusy         = errors.New("report is being updated")
	ErrReportConflict     = errors.New("report was changed by someone else")
)

// WizardError is a recoverable, user-facing failure. It never mutates the draft.
type WizardError struct {
	Kind    ErrorKind `json:"kind"`
	Rule    string    `json:"rule"`
	Message string    `json:"message"`
}

func (e *WizardError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Rule, e.Message)
}

// Is matches another *WizardError with the same kind and, when set, rule.
func (e *WizardError) Is(target error) bool {
	t, ok := target.(*WizardError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Rule == "" || t.Rule == e.Rule)
}

func validationError(rule, msg string) *WizardError {
	return &WizardError{Kind: KindValidation, Rule: rule, Message: msg}
}

func mediaError(rule, msg string) *WizardError {
	return &WizardError{Kind: KindMedia, Rule: rule, Message: msg}
}

// AsWizardError unwraps err into a *WizardError.
func AsWizardError(err error) (*WizardError, bool) {
	var we *WizardError
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}
