package menu

import "time"

type CreateMenuRequest struct {
	Code         string         `json:"code" validate:"required,max=50"`
	Name         string         `json:"name" validate:"required,max=100"`
	Description  string         `json:"description" validate:"max=500"`
	ParentID     *string        `json:"parent_id"`
	Path         string         `json:"path" validate:"max=200"`
	Icon         string         `json:"icon" validate:"max=50"`
	DisplayOrder int            `json:"display_order" validate:"min=0"`
	IsActive     *bool          `json:"is_active"`
	Metadata     map[string]any `json:"metadata"`
}

type UpdateMenuRequest struct {
	Code         *string        `json:"code" validate:"omitempty,max=50"`
	Name         *string        `json:"name" validate:"omitempty,max=100"`
	Description  *string        `json:"description" validate:"omitempty,max=500"`
	ParentID     *string        `json:"parent_id"`
	Path         *string        `json:"path" validate:"omitempty,max=200"`
	Icon         *string        `json:"icon" validate:"omitempty,max=50"`
	DisplayOrder *int           `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool          `json:"is_active"`
	Metadata     map[string]any `json:"metadata"`
}

type ReplacePermissionsRequest struct {
	MenuIDs []string `json:"menu_ids" validate:"required"`
}

type PermissionResponse struct {
	MenuID    string    `json:"menu_id"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}
