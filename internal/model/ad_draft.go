package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrFieldNotInCategory = errors.New("field does not belong to the selected category")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidOption      = errors.New("value is not one of the allowed options")
)

// ==================== Condition ====================

// Condition is the state of the item being sold.
type Condition string

const (
	ConditionUnset         Condition = ""
	ConditionNew           Condition = "New"
	ConditionUsed          Condition = "Used"
	ConditionNotApplicable Condition = "Not Applicable"
)

// Valid reports whether c is a selectable condition (or unset).
func (c Condition) Valid() bool {
	switch c {
	case ConditionUnset, ConditionNew, ConditionUsed, ConditionNotApplicable:
		return true
	}
	return false
}

// ==================== Field names ====================

// Common field names, as sent by the storefront and serialized on submit.
const (
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldCategory          = "category"
	FieldSubcategory       = "subcategory"
	FieldPrice             = "price"
	FieldNegotiable        = "negotiable"
	FieldCondition         = "condition"
	FieldCity              = "city"
	FieldState             = "state"
	FieldLocation          = "location"
	FieldDeliveryAvailable = "deliveryAvailable"
)

// Field is one flattened name/value pair of a draft.
type Field struct {
	Name  string
	Value string
}

// ==================== AdDraft ====================

// CommonFields are the inputs every ad has regardless of category.
type CommonFields struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          Category  `json:"category"`
	Subcategory       string    `json:"subcategory"`
	Price             string    `json:"price"`
	Negotiable        bool      `json:"negotiable"`
	Condition         Condition `json:"condition"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	Location          string    `json:"location"`
	DeliveryAvailable bool      `json:"deliveryAvailable"`
}

// CategoryExtra holds the category-specific inputs of a draft. It is tagged
// with its category and only accepts names from that category's schema.
type CategoryExtra struct {
	category Category
	values   map[string]string
}

// NewCategoryExtra returns an empty extra record for c.
func NewCategoryExtra(c Category) CategoryExtra {
	return CategoryExtra{category: c, values: make(map[string]string)}
}

// Category returns the tag of the record.
func (e CategoryExtra) Category() Category { return e.category }

// Get returns the value of name, or "" when unset or foreign to the category.
func (e CategoryExtra) Get(name string) string { return e.values[name] }

// Set stores value under name after checking it against the schema.
func (e *CategoryExtra) Set(name, value string) error {
	desc, ok := LookupField(e.category, name)
	if !ok {
		return fmt.Errorf("%w: %q (%s)", ErrFieldNotInCategory, name, e.category)
	}
	if desc.Type == FieldSelect && value != "" && !desc.HasOption(value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidOption, name, value)
	}
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if value == "" {
		delete(e.values, name)
		return nil
	}
	e.values[name] = value
	return nil
}

// Values returns a copy of the non-empty extra values.
func (e CategoryExtra) Values() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

func (e *CategoryExtra) clear(names []string) {
	for _, n := range names {
		delete(e.values, n)
	}
}

// AdDraft is the in-progress listing composed by the wizard.
type AdDraft struct {
	Common CommonFields
	Extra  CategoryExtra
}

// NewAdDraft returns an empty draft with no category selected.
func NewAdDraft() *AdDraft {
	return &AdDraft{Extra: NewCategoryExtra(CategoryNone)}
}

// OnFieldChange applies a single input change. Checkbox inputs carry their
// checked state in value ("true", "on", "1" count as checked).
func (d *AdDraft) OnFieldChange(name, value string, isCheckbox bool) error {
	if isCheckbox {
		value = strconv.FormatBool(parseChecked(value))
	}

	c := &d.Common
	switch name {
	case FieldCategory:
		return d.OnCategoryChange(Category(value))
	case FieldTitle:
		c.Title = value
	case FieldDescription:
		c.Description = value
	case FieldSubcategory:
		if value != "" && !lo.Contains(Subcategories(c.Category), value) {
			return fmt.Errorf("%w: subcategory=%q", ErrInvalidOption, value)
		}
		c.Subcategory = value
	case FieldPrice:
		c.Price = value
	case FieldNegotiable:
		c.Negotiable = parseChecked(value)
	case FieldCondition:
		cond := Condition(value)
		if !cond.Valid() {
			return fmt.Errorf("%w: condition=%q", ErrInvalidOption, value)
		}
		c.Condition = cond
	case FieldCity:
		c.City = value
	case FieldState:
		c.State = value
	case FieldLocation:
		c.Location = value
	case FieldDeliveryAvailable:
		c.DeliveryAvailable = parseChecked(value)
	default:
		if c.Category == CategoryNone {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return d.Extra.Set(name, value)
	}
	return nil
}

// OnCategoryChange switches the draft to next. The previous category's reset
// map is applied before the new category is set, so no field of the old
// category is visible under the new one.
func (d *AdDraft) OnCategoryChange(next Category) error {
	if next != CategoryNone && !next.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, next)
	}

	prev := d.Common.Category
	d.Extra.clear(ResetFieldsFor(prev))

	d.Common.Subcategory = ""
	d.Common.Price = ""
	d.Common.Condition = ConditionUnset
	d.Common.DeliveryAvailable = false

	d.Common.Category = next
	d.Extra = NewCategoryExtra(next)
	return nil
}

// Fields flattens the draft: common fields first, then the category's extra
// fields in schema order. Empty values are included; callers decide on omission.
func (d *AdDraft) Fields() []Field {
	c := d.Common
	out := []Field{
		{FieldTitle, c.Title},
		{FieldDescription, c.Description},
		{FieldCategory, string(c.Category)},
		{FieldSubcategory, c.Subcategory},
		{FieldPrice, c.Price},
		{FieldNegotiable, strconv.FormatBool(c.Negotiable)},
		{FieldCondition, string(c.Condition)},
		{FieldCity, c.City},
		{FieldState, c.State},
		{FieldLocation, c.Location},
		{FieldDeliveryAvailable, strconv.FormatBool(c.DeliveryAvailable)},
	}
	for _, f := range SchemaFor(d.Extra.Category()) {
		out = append(out, Field{f.Name, d.Extra.Get(f.Name)})
	}
	return out
}

// Clone returns a deep copy of the draft.
func (d *AdDraft) Clone() *AdDraft {
	cp := &AdDraft{Common: d.Common, Extra: NewCategoryExtra(d.Extra.Category())}
	for k, v := range d.Extra.values {
		cp.Extra.values[k] = v
	}
	return cp
}

func parseChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
