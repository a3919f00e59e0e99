package repository

import (
	"context"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) DB() *gorm.DB { return r.db }

func (r *MenuRepository) Create(ctx context.Context, m *domain.Menu) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MenuRepository) Update(ctx context.Context, m *domain.Menu) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Menu{}, "id = ?", id).Error
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	var m domain.Menu
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) GetByCode(ctx context.Context, code string) (*domain.Menu, error) {
	var m domain.Menu
	err := r.db.WithContext(ctx).First(&m, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListAll(ctx context.Context, activeOnly bool) ([]domain.Menu, error) {
	var menus []domain.Menu
	q := r.db.WithContext(ctx).Order("display_order ASC, created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&menus).Error
	return menus, err
}

// ListGrantedMenus returns the active menus an admin holds grants for,
// in display order.
func (r *MenuRepository) ListGrantedMenus(ctx context.Context, adminID string) ([]domain.Menu, error) {
	var menus []domain.Menu
	err := r.db.WithContext(ctx).
		Joins("JOIN menu_permissions ON menu_permissions.menu_id = menus.id").
		Where("menu_permissions.admin_id = ? AND menus.is_active = ?", adminID, true).
		Order("menus.display_order ASC, menus.created_at ASC").
		Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) ListPermissions(ctx context.Context, adminID string) ([]domain.MenuPermission, error) {
	var perms []domain.MenuPermission
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Find(&perms).Error
	return perms, err
}

// ReplacePermissions swaps an admin's full grant set in one transaction.
func (r *MenuRepository) ReplacePermissions(ctx context.Context, adminID string, perms []domain.MenuPermission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", adminID).Delete(&domain.MenuPermission{}).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		return tx.Create(&perms).Error
	})
}
