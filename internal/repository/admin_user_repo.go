package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type AdminUserFilters struct {
	Role           domain.Role
	Status         domain.AccountStatus
	ApprovalStatus domain.ApprovalStatus
	Search         string
	Limit          int
	Offset         int
}

type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) DB() *gorm.DB { return r.db }

// FindByID returns (nil, nil) when no record exists. Used by the
// identity resolver.
func (r *AdminUserRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepository) Create(ctx context.Context, u *domain.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AdminUserRepository) Update(ctx context.Context, u *domain.AdminUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *AdminUserRepository) List(ctx context.Context, f AdminUserFilters) ([]domain.AdminUser, int64, error) {
	var users []domain.AdminUser
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.AdminUser{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ApprovalStatus != "" {
		q = q.Where("approval_status = ?", f.ApprovalStatus)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&users).Error

	return users, total, err
}

// CountByApproval returns row counts per approval status for the stats
// endpoint.
func (r *AdminUserRepository) CountByApproval(ctx context.Context) (map[domain.ApprovalStatus]int64, error) {
	type row struct {
		ApprovalStatus domain.ApprovalStatus
		Count          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Select("approval_status, COUNT(*) as count").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ApprovalStatus]int64, len(rows))
	for _, r := range rows {
		out[r.ApprovalStatus] = r.Count
	}
	return out, nil
}
