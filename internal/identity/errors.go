package identity

import "gachastore/internal/pkg/apperr"

var (
	ErrInvalidToken       = apperr.Unauthorized("INVALID_TOKEN", "invalid or expired token")
	ErrInvalidCredentials = apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
	ErrUnknownAccount     = apperr.Unauthorized("UNKNOWN_ACCOUNT", "no account found for this identity")
	ErrNotApproved        = apperr.Forbidden("ACCOUNT_NOT_APPROVED", "account is pending approval")
	ErrAccountRejected    = apperr.Forbidden("ACCOUNT_REJECTED", "account request was rejected")
	ErrAccountSuspended   = apperr.Forbidden("ACCOUNT_SUSPENDED", "account is suspended")
	ErrAccountDeleted     = apperr.Forbidden("ACCOUNT_DELETED", "account no longer exists")
	ErrForbidden          = apperr.Forbidden("FORBIDDEN", "insufficient permissions")
	ErrEmailTaken         = apperr.Validation("EMAIL_TAKEN", "email is already registered")
)
