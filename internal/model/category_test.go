package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFor_UnknownCategory(t *testing.T) {
	assert.Empty(t, SchemaFor(CategoryNone))
	assert.Empty(t, SchemaFor(Category("Spaceships")))
	assert.Empty(t, ResetFieldsFor(Category("Spaceships")))
	assert.Empty(t, Subcategories(Category("Spaceships")))
}

func TestResetMap_CoversSchema(t *testing.T) {
	for _, c := range Categories() {
		t.Run(string(c), func(t *testing.T) {
			names := make([]string, 0)
			for _, f := range SchemaFor(c) {
				names = append(names, f.Name)
			}
			assert.ElementsMatch(t, names, ResetFieldsFor(c))
			assert.NotEmpty(t, Subcategories(c))
		})
	}
}

func TestSchemaFor_ReturnsCopy(t *testing.T) {
	fields := SchemaFor(CategoryVehicles)
	fields[0].Name = "tampered"

	assert.Equal(t, "make", SchemaFor(CategoryVehicles)[0].Name)
}

func TestSelectFieldsHaveOptions(t *testing.T) {
	for _, c := range Categories() {
		for _, f := range SchemaFor(c) {
			if f.Type == FieldSelect {
				assert.NotEmpty(t, f.Options, "%s.%s", c, f.Name)
			}
		}
	}
}

func TestIsNoPriceCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryJobs, true},
		{CategoryServices, true},
		{CategoryVehicles, false},
		{CategoryAgriculture, false},
		{CategoryNone, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoPriceCategory(tt.category))
		})
	}
}
