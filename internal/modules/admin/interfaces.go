package admin

import (
	"context"

	"gachastore/internal/domain"
	"gachastore/internal/repository"
)

type AdminUserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	Update(ctx context.Context, u *domain.AdminUser) error
	List(ctx context.Context, f repository.AdminUserFilters) ([]domain.AdminUser, int64, error)
	CountByApproval(ctx context.Context) (map[domain.ApprovalStatus]int64, error)
}
