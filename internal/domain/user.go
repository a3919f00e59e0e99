package domain

import "time"

type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAdmin       Role = "admin"
	RoleOwner       Role = "owner"
	RoleGeneralUser Role = "general_user"
)

type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusDeleted   AccountStatus = "deleted"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// AdminUser is the privileged account record (super_admin / admin / owner).
// Accounts are never hard-deleted: status=deleted is a terminal soft delete.
type AdminUser struct {
	ID              string         `json:"id" gorm:"primaryKey;size:36"`
	Email           string         `json:"email" gorm:"uniqueIndex"`
	FullName        string         `json:"full_name"`
	Role            Role           `json:"role"`
	Status          AccountStatus  `json:"status"`
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy      *string        `json:"approved_by,omitempty" gorm:"size:36"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	LastLoginAt     *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// GeneralUser is the consumer-facing account, stored separately from
// administrative accounts. Created on first social sign-in.
type GeneralUser struct {
	ID         string        `json:"id" gorm:"primaryKey;size:36"`
	Email      string        `json:"email"`
	Nickname   string        `json:"nickname"`
	FullName   string        `json:"full_name,omitempty"`
	Status     AccountStatus `json:"status"`
	Provider   string        `json:"provider,omitempty"`
	ProviderID string        `json:"-"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
