package shop

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/metrics"
	"gachastore/internal/repository"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type Service struct {
	shops ShopRepositoryInterface
	audit *audit.Recorder
}

func NewService(shops ShopRepositoryInterface, auditRec *audit.Recorder) *Service {
	return &Service{shops: shops, audit: auditRec}
}

// List returns the directory page visible to the caller. Anonymous and
// general callers only see verified shops, owners only the shops their
// verified links point at, and admins may widen the filter with the
// status parameter.
func (s *Service) List(ctx context.Context, id *identity.Identity, q ListQuery) ([]domain.Shop, int64, int, int, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	f := repository.ShopFilters{
		Sido:     q.Sido,
		Sigungu:  q.Sigungu,
		ShopType: q.ShopType,
		Search:   q.Search,
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	if id != nil {
		switch id.Role {
		case domain.RoleAdmin, domain.RoleSuperAdmin:
			f.IncludeUnverified = true
			f.VerificationStatus = domain.VerificationStatus(q.Status)
		case domain.RoleOwner:
			// no verified links means an empty page, not an error
			f.OwnerID = id.ID
			f.IncludeUnverified = true
			f.VerificationStatus = domain.VerificationStatus(q.Status)
		}
	}

	shops, total, err := s.shops.List(ctx, f)
	if err != nil {
		return nil, 0, 0, 0, apperr.Internal("list shops", err)
	}
	return shops, total, page, perPage, nil
}

// Get loads one shop. Unverified shops stay hidden from the public and
// from owners without a verified link.
func (s *Service) Get(ctx context.Context, id *identity.Identity, shopID string) (*domain.Shop, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	visible := shop.VerificationStatus == domain.VerificationVerified
	if !visible && id != nil {
		switch {
		case id.Role == domain.RoleAdmin || id.Role == domain.RoleSuperAdmin:
			visible = true
		case id.Role == domain.RoleOwner:
			isOwner, err := s.shops.IsVerifiedOwner(ctx, shopID, id.ID)
			if err != nil {
				return nil, apperr.Internal("check ownership", err)
			}
			visible = isOwner
		}
	}
	if !visible {
		return nil, ErrShopNotFound
	}

	tags, err := s.shops.ListTags(ctx, shopID)
	if err != nil {
		return nil, apperr.Internal("load shop tags", err)
	}
	shop.Tags = tags
	return shop, nil
}

// Create registers a shop with immediate trust: admin-entered data
// goes live verified.
func (s *Service) Create(ctx context.Context, id *identity.Identity, p *Payload) (*domain.Shop, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}
	if errs := ValidateNew(p); len(errs) > 0 {
		return nil, apperr.Validation("VALIDATION_ERROR", "shop payload is invalid").WithDetails(errs)
	}

	now := time.Now()
	shop := &domain.Shop{
		ID:                 uuid.NewString(),
		VerificationStatus: domain.VerificationVerified,
		DataSource:         domain.SourceAdminInput,
		VerifiedAt:         &now,
		VerifiedBy:         &id.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          &id.ID,
	}
	applyPayload(shop, p)

	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, apperr.Internal("create shop", err)
	}

	// tag attach stays non-fatal on create; the shop row already exists
	if len(p.TagIDs) > 0 {
		if err := s.shops.AttachTags(ctx, shop.ID, p.TagIDs, id.ID); err != nil {
			metrics.SideEffectFailures.WithLabelValues("tags").Inc()
			log.Printf("tag attach failed for shop %s: %v", shop.ID, err)
		}
	}

	s.audit.Record(ctx, "shop.create", "shop", shop.ID, &id.ID, map[string]any{
		"data_source": string(shop.DataSource),
	})
	return shop, nil
}

// Submit files a shop proposal from any signed-in account. The shop
// lands pending; owner-class submitters also get an unverified
// ownership link so a later owner-verify can unlock edits. This path
// has no spam guard: that belongs to the moderated submission flow.
func (s *Service) Submit(ctx context.Context, id *identity.Identity, p *Payload) (*domain.Shop, error) {
	if err := identity.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	if errs := ValidateNew(p); len(errs) > 0 {
		return nil, apperr.Validation("VALIDATION_ERROR", "shop payload is invalid").WithDetails(errs)
	}

	now := time.Now()
	shop := &domain.Shop{
		ID:                 uuid.NewString(),
		VerificationStatus: domain.VerificationPending,
		DataSource:         domain.SourceUserInput,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          &id.ID,
	}
	applyPayload(shop, p)

	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, apperr.Internal("create shop", err)
	}

	if id.Role == domain.RoleOwner {
		link := &domain.ShopOwner{
			ID:        uuid.NewString(),
			ShopID:    shop.ID,
			OwnerID:   id.ID,
			Verified:  false,
			CreatedAt: now,
		}
		if err := s.shops.CreateOwnerLink(ctx, link); err != nil {
			return nil, apperr.Internal("create owner link", err)
		}
	}

	if len(p.TagIDs) > 0 {
		if err := s.shops.AttachTags(ctx, shop.ID, p.TagIDs, id.ID); err != nil {
			metrics.SideEffectFailures.WithLabelValues("tags").Inc()
			log.Printf("tag attach failed for shop %s: %v", shop.ID, err)
		}
	}

	s.audit.Record(ctx, "shop.submit", "shop", shop.ID, &id.ID, map[string]any{
		"data_source": string(shop.DataSource),
	})
	return shop, nil
}

// Update edits a shop. Admins may change anything; owners need a
// verified link and are boxed into the operational field allow-list.
func (s *Service) Update(ctx context.Context, id *identity.Identity, shopID string, p *Payload) (*domain.Shop, error) {
	if err := identity.RequireRole(id, domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleOwner); err != nil {
		return nil, err
	}
	if errs := ValidateUpdate(p); len(errs) > 0 {
		return nil, apperr.Validation("VALIDATION_ERROR", "shop payload is invalid").WithDetails(errs)
	}

	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if id.Role == domain.RoleOwner {
		isOwner, err := s.shops.IsVerifiedOwner(ctx, shopID, id.ID)
		if err != nil {
			return nil, apperr.Internal("check ownership", err)
		}
		if !isOwner {
			return nil, ErrNotShopOwner
		}
		p = ownerEditable(p)
	}

	applyPayload(shop, p)
	shop.UpdatedAt = time.Now()
	shop.UpdatedBy = &id.ID

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, apperr.Internal("update shop", err)
	}

	if p.TagIDs != nil {
		if err := s.shops.ReplaceTags(ctx, shop.ID, p.TagIDs, id.ID); err != nil {
			return nil, apperr.Internal("replace shop tags", err)
		}
	}

	s.audit.Record(ctx, "shop.update", "shop", shop.ID, &id.ID, nil)
	return shop, nil
}

// Delete soft-removes a shop from the directory. Reserved for super
// admins; regular admins go through the verification flow instead.
func (s *Service) Delete(ctx context.Context, id *identity.Identity, shopID string) error {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return err
	}
	if _, err := s.loadShop(ctx, shopID); err != nil {
		return err
	}
	if err := s.shops.SoftDelete(ctx, shopID, id.ID); err != nil {
		return apperr.Internal("delete shop", err)
	}
	s.audit.Record(ctx, "shop.delete", "shop", shopID, &id.ID, nil)
	return nil
}

// Verify decides a pending shop. The decision is terminal; re-review
// goes through a fresh submission instead.
func (s *Service) Verify(ctx context.Context, id *identity.Identity, shopID string, req VerifyRequest) (*domain.Shop, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.VerificationStatus != domain.VerificationPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	switch req.Action {
	case "approve":
		shop.VerificationStatus = domain.VerificationVerified
	case "reject":
		if req.RejectionReason == "" {
			return nil, apperr.Validation("REASON_REQUIRED", "rejection requires a reason")
		}
		shop.VerificationStatus = domain.VerificationRejected
		shop.RejectionReason = req.RejectionReason
	}
	shop.VerifiedAt = &now
	shop.VerifiedBy = &id.ID
	shop.UpdatedAt = now
	shop.UpdatedBy = &id.ID

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, apperr.Internal("verify shop", err)
	}

	s.audit.Record(ctx, "shop.verify", "shop", shop.ID, &id.ID, map[string]any{
		"action": req.Action,
	})
	return shop, nil
}

func (s *Service) MyShops(ctx context.Context, id *identity.Identity) ([]domain.Shop, error) {
	if err := identity.RequireOwner(id); err != nil {
		return nil, err
	}
	shops, err := s.shops.ListByOwner(ctx, id.ID)
	if err != nil {
		return nil, apperr.Internal("list owned shops", err)
	}
	return shops, nil
}

// Claim files an ownership request for an existing shop. The link stays
// unverified until an admin confirms it.
func (s *Service) Claim(ctx context.Context, id *identity.Identity, shopID string, req ClaimRequest) (*domain.ShopOwner, error) {
	if err := identity.RequireOwner(id); err != nil {
		return nil, err
	}
	if _, err := s.loadShop(ctx, shopID); err != nil {
		return nil, err
	}

	if _, err := s.shops.GetOwnerLink(ctx, shopID, id.ID); err == nil {
		return nil, ErrAlreadyClaimed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("check owner link", err)
	}

	link := &domain.ShopOwner{
		ID:              uuid.NewString(),
		ShopID:          shopID,
		OwnerID:         id.ID,
		Phone:           req.Phone,
		BusinessName:    req.BusinessName,
		BusinessLicense: req.BusinessLicense,
		Verified:        false,
		CreatedAt:       time.Now(),
	}
	if err := s.shops.CreateOwnerLink(ctx, link); err != nil {
		return nil, apperr.Internal("create owner link", err)
	}

	s.audit.Record(ctx, "shop.claim", "shop", shopID, &id.ID, nil)
	return link, nil
}

// VerifyOwner confirms an ownership request, unlocking owner edits.
func (s *Service) VerifyOwner(ctx context.Context, id *identity.Identity, shopID, ownerID string) (*domain.ShopOwner, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	link, err := s.shops.GetOwnerLink(ctx, shopID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, apperr.Internal("load owner link", err)
	}

	now := time.Now()
	link.Verified = true
	link.VerifiedAt = &now
	if err := s.shops.UpdateOwnerLink(ctx, link); err != nil {
		return nil, apperr.Internal("verify owner link", err)
	}

	s.audit.Record(ctx, "shop.owner_verify", "shop", shopID, &id.ID, map[string]any{
		"owner_id": ownerID,
	})
	return link, nil
}

func (s *Service) loadShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, apperr.Internal("load shop", err)
	}
	return shop, nil
}

// ownerEditable strips a patch down to the operational fields an owner
// may touch. Anything else, name, region, coordinates, tags, is
// dropped rather than rejected; identity data stays admin-only.
func ownerEditable(p *Payload) *Payload {
	return &Payload{
		Description:       p.Description,
		Phone:             p.Phone,
		BusinessHours:     p.BusinessHours,
		Is24Hours:         p.Is24Hours,
		GachaMachineCount: p.GachaMachineCount,
		MainSeries:        p.MainSeries,
		DetailAddress:     p.DetailAddress,
		SocialURLs:        p.SocialURLs,
	}
}

func applyPayload(shop *domain.Shop, p *Payload) {
	if p.Name != nil {
		shop.Name = *p.Name
	}
	if p.ShopType != nil {
		shop.ShopType = p.ShopType
	}
	if p.Description != nil {
		shop.Description = *p.Description
	}
	if p.Phone != nil {
		shop.Phone = *p.Phone
	}
	if p.Latitude != nil {
		shop.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		shop.Longitude = p.Longitude
	}
	if p.BusinessHours != nil {
		shop.BusinessHours = p.BusinessHours
	}
	if p.Is24Hours != nil {
		shop.Is24Hours = p.Is24Hours
	}
	if p.GachaMachineCount != nil {
		shop.GachaMachineCount = p.GachaMachineCount
	}
	if p.MainSeries != nil {
		shop.MainSeries = p.MainSeries
	}
	if p.Sido != nil {
		shop.Sido = *p.Sido
	}
	if p.Sigungu != nil {
		shop.Sigungu = *p.Sigungu
	}
	if p.JibunAddress != nil {
		shop.JibunAddress = *p.JibunAddress
	}
	if p.RoadAddress != nil {
		shop.RoadAddress = *p.RoadAddress
	}
	if p.DetailAddress != nil {
		shop.DetailAddress = *p.DetailAddress
	}
	if p.ZoneCode != nil {
		shop.ZoneCode = *p.ZoneCode
	}
	if p.BuildingName != nil {
		shop.BuildingName = *p.BuildingName
	}
	if p.SocialURLs != nil {
		shop.SocialURLs = p.SocialURLs
	}
}
