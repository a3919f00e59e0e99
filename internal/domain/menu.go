package domain

import "time"

// Menu is a node of the admin navigation tree. ParentID=nil marks a root.
// Siblings are ordered by DisplayOrder ascending.
type Menu struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	Code         string         `json:"code" gorm:"uniqueIndex"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	ParentID     *string        `json:"parent_id,omitempty" gorm:"size:36;index"`
	Path         string         `json:"path,omitempty"`
	Icon         string         `json:"icon,omitempty"`
	DisplayOrder int            `json:"display_order"`
	IsActive     bool           `json:"is_active"`
	Metadata     map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CreatedBy    *string        `json:"created_by,omitempty" gorm:"size:36"`
	UpdatedBy    *string        `json:"updated_by,omitempty" gorm:"size:36"`
}

// MenuPermission grants one admin access to one menu. The grant set for an
// admin is always replaced wholesale, never diffed.
type MenuPermission struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AdminID   string    `json:"admin_id" gorm:"index;size:36"`
	MenuID    string    `json:"menu_id" gorm:"index;size:36"`
	GrantedBy string    `json:"granted_by" gorm:"size:36"`
	GrantedAt time.Time `json:"granted_at"`
}
