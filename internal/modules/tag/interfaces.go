package tag

import (
	"context"

	"gachastore/internal/domain"
	"gachastore/internal/repository"
)

type TagRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Tag) error
	Update(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	ListWithShopCounts(ctx context.Context) ([]repository.TagWithCount, error)
	CountAttachments(ctx context.Context, tagID string) (int64, error)
	SoftDelete(ctx context.Context, id, deletedBy string) error
}
