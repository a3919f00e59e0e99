package auth

import (
	"context"

	"gachastore/internal/domain"
)

type AdminUserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	Create(ctx context.Context, u *domain.AdminUser) error
	Update(ctx context.Context, u *domain.AdminUser) error
}

type GeneralUserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.GeneralUser, error)
	Create(ctx context.Context, u *domain.GeneralUser) error
}

type ShopLinkRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	CreateOwnerLink(ctx context.Context, link *domain.ShopOwner) error
}
