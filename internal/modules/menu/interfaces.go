package menu

import (
	"context"

	"gachastore/internal/domain"
)

type MenuRepositoryInterface interface {
	Create(ctx context.Context, m *domain.Menu) error
	Update(ctx context.Context, m *domain.Menu) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
	GetByCode(ctx context.Context, code string) (*domain.Menu, error)
	ListAll(ctx context.Context, activeOnly bool) ([]domain.Menu, error)
	ListGrantedMenus(ctx context.Context, adminID string) ([]domain.Menu, error)
	ListPermissions(ctx context.Context, adminID string) ([]domain.MenuPermission, error)
	ReplacePermissions(ctx context.Context, adminID string, perms []domain.MenuPermission) error
}

type AdminReaderInterface interface {
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
}
