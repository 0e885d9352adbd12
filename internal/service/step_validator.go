package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"zitheke_dev_v1/internal/model"
)

// ==================== Steps ====================

// Step is a page of the ad-posting wizard.
type Step int

const (
	StepBasicInfo       Step = 1
	StepPricingMedia    Step = 2
	StepLocationPreview Step = 3
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepBasicInfo
	LastStep  = StepLocationPreview
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "Basic Info"
	case StepPricingMedia:
		return "Pricing & Media"
	case StepLocationPreview:
		return "Location & Preview"
	}
	return "Unknown"
}

// Next returns the following step; the last step is its own successor.
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	return s + 1
}

// Prev returns the previous step, never going below the first.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// ==================== Limits ====================

const (
	MinTitleLength       = 5
	MinDescriptionLength = 10
	MinCityLength        = 2
	MinLocationLength    = 3
)

// ==================== Validators ====================

// ValidateStep checks the rules gating the transition out of step. Rules are
// evaluated in a fixed order and the first failure is returned. The last step
// has no gate; submission uses ValidateLocation instead.
func ValidateStep(step Step, draft *model.AdDraft, imageCount int) *WizardError {
	c := draft.Common
	switch step {
	case StepBasicInfo:
		if textLen(c.Title) < MinTitleLength {
			return validationError(RuleTitleLength, "Title must be at least 5 characters long.")
		}
		if textLen(c.Description) < MinDescriptionLength {
			return validationError(RuleDescriptionLength, "Description must be at least 10 characters long.")
		}
		if c.Category == model.CategoryNone {
			return validationError(RuleCategoryRequired, "Please select a category.")
		}
	case StepPricingMedia:
		if !model.IsNoPriceCategory(c.Category) && !positivePrice(c.Price) {
			return validationError(RulePricePositive, "Please enter a valid price greater than zero.")
		}
		if imageCount < 1 {
			return validationError(RuleImageRequired, "Please add at least one image.")
		}
	}
	return nil
}

// ValidateLocation is the submit-time gate. It is independent of the step gates.
func ValidateLocation(draft *model.AdDraft) *WizardError {
	if textLen(draft.Common.City) < MinCityLength {
		return validationError(RuleCityLength, "City must be at least 2 characters long.")
	}
	if textLen(draft.Common.Location) < MinLocationLength {
		return validationError(RuleLocationLength, "Location must be at least 3 characters long.")
	}
	return nil
}

func textLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func positivePrice(raw string) bool {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return d.IsPositive()
}
