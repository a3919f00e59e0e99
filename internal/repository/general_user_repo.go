package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type GeneralUserRepository struct {
	db *gorm.DB
}

func NewGeneralUserRepository(db *gorm.DB) *GeneralUserRepository {
	return &GeneralUserRepository{db: db}
}

func (r *GeneralUserRepository) DB() *gorm.DB { return r.db }

// FindByID returns (nil, nil) when no record exists.
func (r *GeneralUserRepository) FindByID(ctx context.Context, id string) (*domain.GeneralUser, error) {
	var u domain.GeneralUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *GeneralUserRepository) GetByEmail(ctx context.Context, email string) (*domain.GeneralUser, error) {
	var u domain.GeneralUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GeneralUserRepository) Create(ctx context.Context, u *domain.GeneralUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GeneralUserRepository) Update(ctx context.Context, u *domain.GeneralUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}
