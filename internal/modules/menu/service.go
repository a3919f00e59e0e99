package menu

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
)

// Service owns the navigation tree and its per-admin grants.
type Service struct {
	menus  MenuRepositoryInterface
	admins AdminReaderInterface
	audit  *audit.Recorder
}

func NewService(menus MenuRepositoryInterface, admins AdminReaderInterface, auditRec *audit.Recorder) *Service {
	return &Service{menus: menus, admins: admins, audit: auditRec}
}

// ListVisible returns the tree the caller is allowed to see.
// Super admins see every active menu without explicit grants; admins
// see the active menus they hold grants for.
func (s *Service) ListVisible(ctx context.Context, id *identity.Identity) ([]*Node, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	var menus []domain.Menu
	var err error
	if id.Role == domain.RoleSuperAdmin {
		menus, err = s.menus.ListAll(ctx, true)
	} else {
		menus, err = s.menus.ListGrantedMenus(ctx, id.ID)
	}
	if err != nil {
		return nil, apperr.Internal("list menus", err)
	}

	return BuildTree(menus), nil
}

// ListAll returns the full tree, inactive menus included.
func (s *Service) ListAll(ctx context.Context, id *identity.Identity) ([]*Node, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	menus, err := s.menus.ListAll(ctx, false)
	if err != nil {
		return nil, apperr.Internal("list menus", err)
	}

	return BuildTree(menus), nil
}

func (s *Service) Create(ctx context.Context, id *identity.Identity, req CreateMenuRequest) (*domain.Menu, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	if _, err := s.menus.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrDuplicateCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("check menu code", err)
	}

	if req.ParentID != nil {
		if _, err := s.menus.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, apperr.Internal("check parent menu", err)
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	m := &domain.Menu{
		ID:           uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		ParentID:     req.ParentID,
		Path:         req.Path,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    &id.ID,
	}

	if err := s.menus.Create(ctx, m); err != nil {
		return nil, apperr.Internal("create menu", err)
	}

	s.audit.Record(ctx, "menu.create", "menu", m.ID, &id.ID, map[string]any{"code": m.Code})
	return m, nil
}

func (s *Service) Update(ctx context.Context, id *identity.Identity, menuID string, req UpdateMenuRequest) (*domain.Menu, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	m, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, apperr.Internal("load menu", err)
	}

	if req.Code != nil && *req.Code != m.Code {
		if other, err := s.menus.GetByCode(ctx, *req.Code); err == nil && other.ID != menuID {
			return nil, ErrDuplicateCode
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("check menu code", err)
		}
		m.Code = *req.Code
	}

	if req.ParentID != nil {
		if *req.ParentID == menuID {
			return nil, ErrSelfParent
		}
		if _, err := s.menus.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, apperr.Internal("check parent menu", err)
		}
		m.ParentID = req.ParentID
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Path != nil {
		m.Path = *req.Path
	}
	if req.Icon != nil {
		m.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		m.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.Metadata != nil {
		m.Metadata = req.Metadata
	}

	m.UpdatedAt = time.Now()
	m.UpdatedBy = &id.ID

	if err := s.menus.Update(ctx, m); err != nil {
		return nil, apperr.Internal("update menu", err)
	}

	s.audit.Record(ctx, "menu.update", "menu", m.ID, &id.ID, nil)
	return m, nil
}

// Delete deactivates a menu, or physically removes it when hard is set.
// Grants pointing at a removed menu stay behind as inert rows; the
// granted-menu query joins on the menus table so they never surface.
func (s *Service) Delete(ctx context.Context, id *identity.Identity, menuID string, hard bool) error {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return err
	}

	m, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return apperr.Internal("load menu", err)
	}

	if hard {
		if err := s.menus.Delete(ctx, menuID); err != nil {
			return apperr.Internal("delete menu", err)
		}
	} else {
		m.IsActive = false
		m.UpdatedAt = time.Now()
		m.UpdatedBy = &id.ID
		if err := s.menus.Update(ctx, m); err != nil {
			return apperr.Internal("deactivate menu", err)
		}
	}

	s.audit.Record(ctx, "menu.delete", "menu", menuID, &id.ID, map[string]any{"hard": hard})
	return nil
}

// Permissions returns an admin's grant list. Admins may read their own
// grants; everything else needs super admin.
func (s *Service) Permissions(ctx context.Context, id *identity.Identity, adminID string) ([]PermissionResponse, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}
	if id.Role != domain.RoleSuperAdmin && id.ID != adminID {
		return nil, identity.ErrForbidden
	}

	perms, err := s.menus.ListPermissions(ctx, adminID)
	if err != nil {
		return nil, apperr.Internal("list permissions", err)
	}

	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionResponse{
			MenuID:    p.MenuID,
			GrantedBy: p.GrantedBy,
			GrantedAt: p.GrantedAt,
		})
	}
	return out, nil
}

// ReplacePermissions swaps an admin's entire grant set and returns the
// set that survived. Unknown menu ids are dropped, not rejected. Grants
// only apply to admin-role accounts; super admins see everything
// without grants and owners never see the admin navigation.
func (s *Service) ReplacePermissions(ctx context.Context, id *identity.Identity, adminID string, req ReplacePermissionsRequest) ([]PermissionResponse, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	target, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, apperr.Internal("load admin", err)
	}
	if target.Role != domain.RoleAdmin {
		return nil, ErrNotGrantable
	}

	seen := make(map[string]bool, len(req.MenuIDs))
	perms := make([]domain.MenuPermission, 0, len(req.MenuIDs))
	now := time.Now()
	for _, menuID := range req.MenuIDs {
		if seen[menuID] {
			continue
		}
		seen[menuID] = true

		if _, err := s.menus.GetByID(ctx, menuID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, apperr.Internal("check menu id", err)
		}

		perms = append(perms, domain.MenuPermission{
			ID:        uuid.NewString(),
			AdminID:   adminID,
			MenuID:    menuID,
			GrantedBy: id.ID,
			GrantedAt: now,
		})
	}

	if err := s.menus.ReplacePermissions(ctx, adminID, perms); err != nil {
		return nil, apperr.Internal("replace permissions", err)
	}

	s.audit.Record(ctx, "menu.permissions.replace", "admin_user", adminID, &id.ID, map[string]any{
		"menu_count": len(perms),
	})

	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionResponse{
			MenuID:    p.MenuID,
			GrantedBy: p.GrantedBy,
			GrantedAt: p.GrantedAt,
		})
	}
	return out, nil
}
