package submission

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gachastore/internal/domain"
	"gachastore/internal/repository"
)

type SubmissionRepositoryInterface interface {
	DB() *gorm.DB
	Create(ctx context.Context, s *domain.UserSubmission) error
	GetByID(ctx context.Context, id string) (*domain.UserSubmission, error)
	List(ctx context.Context, f repository.SubmissionFilters) ([]domain.UserSubmission, int64, error)
	ListByShop(ctx context.Context, shopID string) ([]domain.UserSubmission, error)
	CountRecentBySubmitter(ctx context.Context, submitterID string, since time.Time) (int64, error)
}

type ShopReaderInterface interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
}

type AuditReaderInterface interface {
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]domain.AuditLog, int64, error)
}
