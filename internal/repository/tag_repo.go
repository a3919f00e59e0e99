package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) DB() *gorm.DB { return r.db }

func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByName returns (nil, nil) when no live tag has the name.
func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(name)), false).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": now,
			"updated_by": deletedBy,
			"updated_at": now,
		}).Error
}

// CountAttachments reports how many shops currently carry the tag.
func (r *TagRepository) CountAttachments(ctx context.Context, tagID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ShopTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}

// TagWithCount pairs a tag with the number of shops carrying it.
type TagWithCount struct {
	domain.Tag
	ShopCount int64 `json:"shop_count"`
}

func (r *TagRepository) ListWithShopCounts(ctx context.Context) ([]TagWithCount, error) {
	var rows []TagWithCount
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Select("tags.*, COUNT(shop_tags.shop_id) AS shop_count").
		Joins("LEFT JOIN shop_tags ON shop_tags.tag_id = tags.id").
		Where("tags.is_deleted = ?", false).
		Group("tags.id").
		Order("tags.name ASC").
		Find(&rows).Error
	return rows, err
}
