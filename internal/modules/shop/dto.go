package shop

type ListQuery struct {
	Sido     string `form:"sido"`
	Sigungu  string `form:"sigungu"`
	ShopType string `form:"shop_type"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

type VerifyRequest struct {
	// approve or reject
	Action          string `json:"action" validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejection_reason" validate:"max=500"`
}

type ClaimRequest struct {
	Phone           string `json:"phone" validate:"max=30"`
	BusinessName    string `json:"business_name" validate:"max=100"`
	BusinessLicense string `json:"business_license" validate:"max=50"`
}

type VerifyOwnerRequest struct {
	OwnerID string `json:"owner_id" validate:"required"`
}
