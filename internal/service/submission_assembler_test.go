package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zitheke_dev_v1/internal/model"
)

var testIdentity = model.Identity{ID: "u-42", Name: "Chikondi Banda", Email: "chikondi@example.mw", Phone: "+265888000111"}

func jobsDraft(t *testing.T) *model.AdDraft {
	t.Helper()
	d := draftWith(t, model.CategoryJobs, map[string]string{
		model.FieldTitle:       "Accountant wanted",
		model.FieldDescription: "Busy office in Blantyre",
		model.FieldCity:        "Blantyre",
		model.FieldLocation:    "Ginnery Corner",
		"salary":               "50000",
		"jobType":              "Full-time",
	})
	return d
}

func TestAssembleSubmission_JobsNormalization(t *testing.T) {
	d := jobsDraft(t)

	p := AssembleSubmission(d, nil, nil, testIdentity)

	price, ok := p.Get(model.FieldPrice)
	assert.True(t, ok)
	assert.Equal(t, "50000", price)
	cond, _ := p.Get(model.FieldCondition)
	assert.Equal(t, string(model.ConditionNotApplicable), cond)

	assert.Empty(t, d.Common.Price)
	assert.Equal(t, model.ConditionUnset, d.Common.Condition)
}

func TestAssembleSubmission_JobsOverridesUserCondition(t *testing.T) {
	d := jobsDraft(t)
	require.NoError(t, d.OnFieldChange(model.FieldCondition, string(model.ConditionUsed), false))

	p := AssembleSubmission(d, nil, nil, testIdentity)

	cond, _ := p.Get(model.FieldCondition)
	assert.Equal(t, string(model.ConditionNotApplicable), cond)
	assert.Equal(t, model.ConditionUsed, d.Common.Condition)
}

func TestAssembleSubmission_NonJobsUntouched(t *testing.T) {
	d := draftWith(t, model.CategoryVehicles, map[string]string{
		model.FieldTitle: "Toyota Hilux",
		model.FieldPrice: "25000000",
	})

	p := AssembleSubmission(d, nil, nil, testIdentity)

	price, _ := p.Get(model.FieldPrice)
	assert.Equal(t, "25000000", price)
	_, hasCondition := p.Get(model.FieldCondition)
	assert.False(t, hasCondition)
}

func TestAssembleSubmission_OmitsEmptyAndAddsOwner(t *testing.T) {
	d := draftWith(t, model.CategoryVehicles, map[string]string{model.FieldTitle: "Toyota Hilux"})

	p := AssembleSubmission(d, nil, nil, model.Identity{ID: "u-1", Name: "Tamanda"})

	for _, f := range p.Fields {
		assert.NotEmpty(t, f.Value, "field %s", f.Name)
	}
	_, hasDescription := p.Get(model.FieldDescription)
	assert.False(t, hasDescription)
	negotiable, ok := p.Get(model.FieldNegotiable)
	assert.True(t, ok)
	assert.Equal(t, "false", negotiable)

	uid, _ := p.Get(FieldOwnerUID)
	name, _ := p.Get(FieldOwnerName)
	assert.Equal(t, "u-1", uid)
	assert.Equal(t, "Tamanda", name)
	_, hasEmail := p.Get(FieldOwnerEmail)
	assert.False(t, hasEmail)
}

func TestSubmissionPayload_Multipart(t *testing.T) {
	d := jobsDraft(t)
	images := []model.StagedFile{
		{Filename: "office.jpg", ContentType: "image/jpeg", Data: []byte("1")},
		{Filename: "team.jpg", ContentType: "image/jpeg", Data: []byte("2")},
	}
	video := &model.StagedFile{Filename: "tour.mp4", ContentType: "video/mp4", Data: []byte("3")}

	req := AssembleSubmission(d, images, video, testIdentity).Multipart(CreateAdPath)

	assert.Equal(t, CreateAdPath, req.Path)
	require.Len(t, req.Files, 3)
	assert.Equal(t, PartImages, req.Files[0].Field)
	assert.Equal(t, "office.jpg", req.Files[0].Filename)
	assert.Equal(t, "team.jpg", req.Files[1].Filename)
	assert.Equal(t, PartVideo, req.Files[2].Field)

	v, ok := req.Get(model.FieldPrice)
	assert.True(t, ok)
	assert.Equal(t, "50000", v)
	v, _ = req.Get(FieldOwnerPhone)
	assert.Equal(t, testIdentity.Phone, v)
}

func TestSubmissionPayload_FieldMap(t *testing.T) {
	p := AssembleSubmission(jobsDraft(t), []model.StagedFile{{Filename: "a.jpg"}}, nil, testIdentity)

	m := p.FieldMap()

	assert.Equal(t, "1", m["imageCount"])
	assert.Equal(t, "false", m["hasVideo"])
	assert.Equal(t, "Accountant wanted", m[model.FieldTitle])
}
