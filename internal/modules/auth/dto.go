package auth

import "time"

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Nickname string `json:"nickname" validate:"max=50"`
	// super_admin accounts are seeded, never self-registered.
	Role string `json:"role" validate:"required,oneof=admin owner general_user"`
	// owner sign-up ties the account to exactly one existing shop
	ShopID       string `json:"shop_id" validate:"omitempty,uuid"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	BusinessName string `json:"business_name" validate:"omitempty,max=100"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccountResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name,omitempty"`
	Nickname       string     `json:"nickname,omitempty"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	ApprovalStatus string     `json:"approval_status,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type SigninResponse struct {
	Account AccountResponse `json:"account"`
	Token   string          `json:"token"`
}
