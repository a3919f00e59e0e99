package submission

import "gachastore/internal/pkg/apperr"

var (
	ErrSubmissionNotFound = apperr.NotFound("SUBMISSION_NOT_FOUND", "submission not found")
	ErrShopNotFound       = apperr.NotFound("SHOP_NOT_FOUND", "target shop not found")
	ErrAlreadyReviewed    = apperr.Validation("ALREADY_REVIEWED", "submission was already reviewed")
	ErrTooManySubmissions = apperr.Validation("SUBMISSION_RATE_LIMITED", "too many submissions, try again later")
	ErrInvalidType        = apperr.Validation("INVALID_SUBMISSION_TYPE", "submission_type must be new, update or correction")
)
