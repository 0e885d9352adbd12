package dto

// FileReportReq reports an ad to the moderators.
type FileReportReq struct {
	AdID    string `json:"ad_id" binding:"required,max=64"`
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details" binding:"omitempty,max=2000"`
}

// UpdateReportStatusReq moves a report through moderation.
type UpdateReportStatusReq struct {
	Status string `json:"status" binding:"required,oneof=reviewing resolved dismissed"`
	Note   string `json:"note" binding:"omitempty,max=1000"`
}

// PageResp wraps one page of a list query.
type PageResp struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
