package service

import (
	"strconv"

	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/pkg/net"
)

// CreateAdPath is the marketplace endpoint a finished draft is posted to.
const CreateAdPath = "/ads/create"

// Multipart part names.
const (
	PartImages = "images"
	PartVideo  = "video"

	FieldOwnerUID   = "ownerUid"
	FieldOwnerName  = "ownerName"
	FieldOwnerEmail = "ownerEmail"
	FieldOwnerPhone = "ownerPhone"
)

// jobSalaryField is copied into price when a Jobs ad is submitted.
const jobSalaryField = "salary"

// SubmissionPayload is the serialized form of one submission attempt.
type SubmissionPayload struct {
	Fields []model.Field
	Images []model.StagedFile
	Video  *model.StagedFile
}

// AssembleSubmission flattens the draft, staged media and caller identity into
// a payload. Empty text values are omitted; booleans are always sent. Jobs ads
// are normalized on a copy: price takes the salary and condition becomes
// "Not Applicable". The draft passed in is never modified.
func AssembleSubmission(draft *model.AdDraft, images []model.StagedFile, video *model.StagedFile, who model.Identity) *SubmissionPayload {
	snapshot := draft.Clone()
	if snapshot.Common.Category == model.CategoryJobs {
		snapshot.Common.Price = snapshot.Extra.Get(jobSalaryField)
		snapshot.Common.Condition = model.ConditionNotApplicable
	}

	fields := make([]model.Field, 0, 16)
	for _, f := range snapshot.Fields() {
		if f.Value == "" {
			continue
		}
		fields = append(fields, f)
	}

	for _, owner := range []model.Field{
		{Name: FieldOwnerUID, Value: who.ID},
		{Name: FieldOwnerName, Value: who.Name},
		{Name: FieldOwnerEmail, Value: who.Email},
		{Name: FieldOwnerPhone, Value: who.Phone},
	} {
		if owner.Value != "" {
			fields = append(fields, owner)
		}
	}

	p := &SubmissionPayload{Fields: fields}
	p.Images = append(p.Images, images...)
	if video != nil {
		v := *video
		p.Video = &v
	}
	return p
}

// Get returns the value of a field in the payload.
func (p *SubmissionPayload) Get(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// FieldMap returns the form fields keyed by name, for audit snapshots.
func (p *SubmissionPayload) FieldMap() map[string]string {
	out := make(map[string]string, len(p.Fields)+2)
	for _, f := range p.Fields {
		out[f.Name] = f.Value
	}
	out["imageCount"] = strconv.Itoa(len(p.Images))
	out["hasVideo"] = strconv.FormatBool(p.Video != nil)
	return out
}

// Multipart converts the payload to a request for the marketplace client.
func (p *SubmissionPayload) Multipart(path string) *net.MultipartRequest {
	req := &net.MultipartRequest{Path: path}
	for _, f := range p.Fields {
		req.Fields = append(req.Fields, net.FormField{Name: f.Name, Value: f.Value})
	}
	for _, img := range p.Images {
		req.Files = append(req.Files, net.FileData{
			Field:       PartImages,
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	if p.Video != nil {
		req.Files = append(req.Files, net.FileData{
			Field:       PartVideo,
			Filename:    p.Video.Filename,
			ContentType: p.Video.ContentType,
			Data:        p.Video.Data,
		})
	}
	return req
}
