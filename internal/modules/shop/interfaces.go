package shop

import (
	"context"

	"gachastore/internal/domain"
	"gachastore/internal/repository"
)

type ShopRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Shop) error
	Update(ctx context.Context, s *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	List(ctx context.Context, f repository.ShopFilters) ([]domain.Shop, int64, error)
	SoftDelete(ctx context.Context, id string, deletedBy string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Shop, error)
	IsVerifiedOwner(ctx context.Context, shopID, ownerID string) (bool, error)
	CreateOwnerLink(ctx context.Context, link *domain.ShopOwner) error
	GetOwnerLink(ctx context.Context, shopID, ownerID string) (*domain.ShopOwner, error)
	UpdateOwnerLink(ctx context.Context, link *domain.ShopOwner) error
	ListTags(ctx context.Context, shopID string) ([]domain.Tag, error)
	AttachTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error
	ReplaceTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error
}
