package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type ShopFilters struct {
	Sido               string
	Sigungu            string
	ShopType           string
	VerificationStatus domain.VerificationStatus
	Search             string
	// OwnerID restricts results to shops the owner holds a verified
	// link to.
	OwnerID string
	// IncludeUnverified widens results past verified-only. Set for
	// administrative and owner-scoped callers.
	IncludeUnverified bool
	Limit             int
	Offset            int
}

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) DB() *gorm.DB { return r.db }

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShopRepository) Update(ctx context.Context, s *domain.Shop) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	var s domain.Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) List(ctx context.Context, f ShopFilters) ([]domain.Shop, int64, error) {
	var shops []domain.Shop
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("shops.is_deleted = ?", false)

	if f.OwnerID != "" {
		q = q.Joins("JOIN shop_owners ON shop_owners.shop_id = shops.id").
			Where("shop_owners.owner_id = ? AND shop_owners.verified = ?", f.OwnerID, true)
	}
	if !f.IncludeUnverified {
		q = q.Where("verification_status = ?", domain.VerificationVerified)
	} else if f.VerificationStatus != "" {
		q = q.Where("verification_status = ?", f.VerificationStatus)
	}
	if f.Sido != "" {
		q = q.Where("sido = ?", f.Sido)
	}
	if f.Sigungu != "" {
		q = q.Where("sigungu = ?", f.Sigungu)
	}
	if f.ShopType != "" {
		// shop_type is stored as a JSON array of strings.
		q = q.Where("shop_type LIKE ?", "%\""+f.ShopType+"\"%")
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(road_address) LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("shops.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&shops).Error

	return shops, total, err
}

func (r *ShopRepository) SoftDelete(ctx context.Context, id string, deletedBy string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": now,
			"updated_by": deletedBy,
			"updated_at": now,
		}).Error
}

// ListByOwner returns the shops a verified owner link points at.
func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Shop, error) {
	var shops []domain.Shop
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_owners ON shop_owners.shop_id = shops.id").
		Where("shop_owners.owner_id = ? AND shop_owners.verified = ? AND shops.is_deleted = ?", ownerID, true, false).
		Order("shops.created_at DESC").
		Find(&shops).Error
	return shops, err
}

// IsVerifiedOwner reports whether ownerID holds a verified link to shopID.
func (r *ShopRepository) IsVerifiedOwner(ctx context.Context, shopID, ownerID string) (bool, error) {
	var link domain.ShopOwner
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND owner_id = ? AND verified = ?", shopID, ownerID, true).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ShopRepository) CreateOwnerLink(ctx context.Context, link *domain.ShopOwner) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *ShopRepository) GetOwnerLink(ctx context.Context, shopID, ownerID string) (*domain.ShopOwner, error) {
	var link domain.ShopOwner
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND owner_id = ?", shopID, ownerID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ShopRepository) UpdateOwnerLink(ctx context.Context, link *domain.ShopOwner) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *ShopRepository) ListTags(ctx context.Context, shopID string) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_tags ON shop_tags.tag_id = tags.id").
		Where("shop_tags.shop_id = ? AND tags.is_deleted = ?", shopID, false).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// AttachTags links the given tags to a shop. Unknown and deleted tag
// ids are dropped silently.
func (r *ShopRepository) AttachTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error {
	return AttachShopTags(r.db.WithContext(ctx), shopID, tagIDs, actorID)
}

// ReplaceTags swaps the full tag set of a shop in one transaction.
func (r *ShopRepository) ReplaceTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ?", shopID).Delete(&domain.ShopTag{}).Error; err != nil {
			return err
		}
		return AttachShopTags(tx, shopID, tagIDs, actorID)
	})
}

// AttachShopTags inserts shop_tags rows on the given handle so callers
// holding a transaction can join the attach to their own commit.
func AttachShopTags(tx *gorm.DB, shopID string, tagIDs []string, actorID string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var live []string
	err := tx.Model(&domain.Tag{}).
		Where("id IN ? AND is_deleted = ?", tagIDs, false).
		Pluck("id", &live).Error
	if err != nil {
		return err
	}

	now := time.Now()
	for _, tagID := range live {
		st := domain.ShopTag{ShopID: shopID, TagID: tagID, CreatedBy: &actorID, CreatedAt: now}
		if err := tx.Create(&st).Error; err != nil {
			return err
		}
	}
	return nil
}
