package menu

import "gachastore/internal/pkg/apperr"

var (
	ErrMenuNotFound   = apperr.NotFound("MENU_NOT_FOUND", "menu not found")
	ErrDuplicateCode  = apperr.Validation("DUPLICATE_MENU_CODE", "a menu with this code already exists")
	ErrParentNotFound = apperr.Validation("PARENT_NOT_FOUND", "parent menu does not exist")
	ErrAdminNotFound  = apperr.NotFound("ADMIN_NOT_FOUND", "admin account not found")
	ErrNotGrantable   = apperr.Validation("NOT_GRANTABLE", "menu permissions can only be granted to admin accounts")
	ErrSelfParent     = apperr.Validation("SELF_PARENT", "a menu cannot be its own parent")
)
