package dto

type CreateReportRequest struct {
	Type          string `json:"type"`
	Description   string `json:"description"`
	ScreenshotKey string `json:"screenshot_key"`
}

type ReviewAction struct {
	Type string `json:"type"`
}

type ReviewReportRequest struct {
	Status    string        `json:"status"`
	AdminNote string        `json:"admin_note"`
	Action    *ReviewAction `json:"action"`
}
