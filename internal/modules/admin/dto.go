package admin

type ListQuery struct {
	Role           string `form:"role"`
	Status         string `form:"status"`
	ApprovalStatus string `form:"approval_status"`
	Search         string `form:"search"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type StatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
