package domain

import "time"

type SubmissionType string

const (
	SubmissionNew        SubmissionType = "new"
	SubmissionUpdate     SubmissionType = "update"
	SubmissionCorrection SubmissionType = "correction"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// UserSubmission is a general user's proposed shop record awaiting review.
// approved and rejected are terminal: a reviewed submission is immutable.
type UserSubmission struct {
	ID             string           `json:"id" gorm:"primaryKey;size:36"`
	ShopID         string           `json:"shop_id" gorm:"index;size:36"`
	SubmitterID    string           `json:"submitter_id" gorm:"index;size:36"`
	SubmissionType SubmissionType   `json:"submission_type"`
	Status         SubmissionStatus `json:"status"`
	SubmissionNote string           `json:"submission_note,omitempty"`
	SubmittedData  map[string]any   `json:"submitted_data" gorm:"serializer:json"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy     *string          `json:"reviewed_by,omitempty" gorm:"size:36"`
	ReviewNote     string           `json:"review_note,omitempty"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	IPAddress      string           `json:"ip_address,omitempty"`
	UserAgent      string           `json:"user_agent,omitempty"`
}
