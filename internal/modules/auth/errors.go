package auth

import "gachastore/internal/pkg/apperr"

var (
	ErrEmailAlreadyExists = apperr.Validation("EMAIL_EXISTS", "this email is already registered")
	ErrInvalidRole        = apperr.Validation("INVALID_ROLE", "role must be admin, owner or general_user")
	ErrOwnerShopRequired  = apperr.Validation("OWNER_SHOP_REQUIRED", "owner sign-up requires shop_id and phone")
	ErrShopNotFound       = apperr.Validation("SHOP_NOT_FOUND", "the shop to link does not exist")
)
