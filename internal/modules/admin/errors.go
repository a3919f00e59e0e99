package admin

import "gachastore/internal/pkg/apperr"

var (
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "admin user not found")
	ErrNotPending         = apperr.Validation("NOT_PENDING", "account is not awaiting approval")
	ErrNotSuspended       = apperr.Validation("NOT_SUSPENDED", "account is not suspended")
	ErrAlreadySuspended   = apperr.Validation("ALREADY_SUSPENDED", "account is already suspended")
	ErrSelfAction         = apperr.Validation("SELF_ACTION", "you cannot perform this action on your own account")
	ErrSuperAdminTarget   = apperr.Forbidden("SUPER_ADMIN_TARGET", "super admin accounts cannot be modified here")
	ErrReasonRequired     = apperr.Validation("REASON_REQUIRED", "rejection requires a reason")
	ErrAccountNotApproved = apperr.Validation("ACCOUNT_NOT_APPROVED", "account must be approved first")
	ErrAlreadyDeleted     = apperr.Validation("ALREADY_DELETED", "account is already deleted")
)
