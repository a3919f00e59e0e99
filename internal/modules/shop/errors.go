package shop

import "gachastore/internal/pkg/apperr"

var (
	ErrShopNotFound    = apperr.NotFound("SHOP_NOT_FOUND", "shop not found")
	ErrNotShopOwner    = apperr.Forbidden("NOT_SHOP_OWNER", "you do not hold a verified link to this shop")
	ErrAlreadyClaimed  = apperr.Validation("ALREADY_CLAIMED", "an ownership request for this shop already exists")
	ErrLinkNotFound    = apperr.NotFound("OWNER_LINK_NOT_FOUND", "no ownership request found for this shop and owner")
	ErrAlreadyReviewed = apperr.Validation("SHOP_ALREADY_REVIEWED", "shop verification was already decided")
)
