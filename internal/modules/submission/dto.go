package submission

import "gachastore/internal/domain"

type SubmitRequest struct {
	SubmissionType string         `json:"submission_type" validate:"required,oneof=new update correction"`
	ShopID         string         `json:"shop_id"`
	SubmissionNote string         `json:"submission_note" validate:"max=500"`
	SubmittedData  map[string]any `json:"submitted_data" validate:"required"`
}

type ReviewRequest struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	ReviewNote string `json:"review_note" validate:"max=500"`
	// reviewer corrections applied to the shop on approval, on top of
	// the submitted data
	ShopUpdates map[string]any `json:"shop_updates"`
}

// ReviewResult pairs the action taken with the shop as it stands after
// the decision.
type ReviewResult struct {
	Action     string                 `json:"action"`
	Shop       *domain.Shop           `json:"shop"`
	Submission *domain.UserSubmission `json:"submission"`
}

type ListQuery struct {
	Status  string `form:"status"`
	ShopID  string `form:"shop_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
