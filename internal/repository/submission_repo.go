package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type SubmissionFilters struct {
	Status      domain.SubmissionStatus
	SubmitterID string
	ShopID      string
	Limit       int
	Offset      int
}

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) DB() *gorm.DB { return r.db }

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.UserSubmission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.UserSubmission, error) {
	var s domain.UserSubmission
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) List(ctx context.Context, f SubmissionFilters) ([]domain.UserSubmission, int64, error) {
	var subs []domain.UserSubmission
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.UserSubmission{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SubmitterID != "" {
		q = q.Where("submitter_id = ?", f.SubmitterID)
	}
	if f.ShopID != "" {
		q = q.Where("shop_id = ?", f.ShopID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("submitted_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&subs).Error

	return subs, total, err
}

// CountRecentBySubmitter counts submissions since the cutoff, feeding
// the rolling-window spam guard.
func (r *SubmissionRepository) CountRecentBySubmitter(ctx context.Context, submitterID string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.UserSubmission{}).
		Where("submitter_id = ? AND submitted_at >= ?", submitterID, since).
		Count(&n).Error
	return n, err
}

// ListByShop returns every submission ever filed for a shop, newest
// first.
func (r *SubmissionRepository) ListByShop(ctx context.Context, shopID string) ([]domain.UserSubmission, error) {
	var subs []domain.UserSubmission
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}
