package tag

import "gachastore/internal/pkg/apperr"

var (
	ErrTagNotFound  = apperr.NotFound("TAG_NOT_FOUND", "tag not found")
	ErrTagNameTaken = apperr.Validation("TAG_NAME_TAKEN", "a tag with this name already exists")
	ErrTagInUse     = apperr.Validation("TAG_IN_USE", "tag is attached to shops and cannot be deleted")
)
