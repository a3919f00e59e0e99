package submission

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/modules/shop"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/metrics"
	"gachastore/internal/repository"
)

const (
	// rolling-window spam guard: at most 5 submissions per hour per user
	maxSubmissionsPerWindow = 5
	spamWindow              = time.Hour

	defaultPerPage = 20
	maxPerPage     = 100
)

// Service runs the crowd-sourced submission pipeline: general users
// propose shop data, admins approve or reject it.
type Service struct {
	subs  SubmissionRepositoryInterface
	shops ShopReaderInterface
	trail AuditReaderInterface
	audit *audit.Recorder

	// test seam; defaults to time.Now
	now func() time.Time
}

func NewService(subs SubmissionRepositoryInterface, shops ShopReaderInterface, trail AuditReaderInterface, auditRec *audit.Recorder) *Service {
	return &Service{
		subs:  subs,
		shops: shops,
		trail: trail,
		audit: auditRec,
		now:   time.Now,
	}
}

// Submit files a proposal. Only general accounts go through moderation;
// administrative roles have their own write paths. A "new" submission
// creates the pending shop row and the submission atomically; update
// and correction point at an existing shop.
func (s *Service) Submit(ctx context.Context, id *identity.Identity, req SubmitRequest, ipAddress, userAgent string) (*domain.UserSubmission, error) {
	if err := identity.RequireGeneral(id); err != nil {
		return nil, err
	}

	now := s.now()
	recent, err := s.subs.CountRecentBySubmitter(ctx, id.ID, now.Add(-spamWindow))
	if err != nil {
		return nil, apperr.Internal("count recent submissions", err)
	}
	if recent >= maxSubmissionsPerWindow {
		metrics.SpamGuardRejections.Inc()
		return nil, ErrTooManySubmissions
	}

	payload, err := shop.ParsePayload(req.SubmittedData)
	if err != nil {
		return nil, apperr.Validation("INVALID_PAYLOAD", "submitted_data is not a valid shop payload")
	}

	subType := domain.SubmissionType(req.SubmissionType)
	switch subType {
	case domain.SubmissionNew:
		if errs := shop.ValidateNew(payload); len(errs) > 0 {
			return nil, apperr.Validation("VALIDATION_ERROR", "submitted shop data is invalid").WithDetails(errs)
		}
	case domain.SubmissionUpdate, domain.SubmissionCorrection:
		if req.ShopID == "" {
			return nil, apperr.Validation("SHOP_ID_REQUIRED", "update and correction submissions need a shop_id")
		}
		if errs := shop.ValidateUpdate(payload); len(errs) > 0 {
			return nil, apperr.Validation("VALIDATION_ERROR", "submitted shop data is invalid").WithDetails(errs)
		}
		if _, err := s.shops.GetByID(ctx, req.ShopID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShopNotFound
			}
			return nil, apperr.Internal("load target shop", err)
		}
	default:
		return nil, ErrInvalidType
	}

	sub := &domain.UserSubmission{
		ID:             uuid.NewString(),
		ShopID:         req.ShopID,
		SubmitterID:    id.ID,
		SubmissionType: subType,
		Status:         domain.SubmissionPending,
		SubmissionNote: req.SubmissionNote,
		SubmittedData:  req.SubmittedData,
		SubmittedAt:    now,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
	}

	err = s.subs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if subType == domain.SubmissionNew {
			newShop := &domain.Shop{
				ID:                 uuid.NewString(),
				VerificationStatus: domain.VerificationPending,
				DataSource:         domain.SourceUserSubmit,
				SubmissionNote:     req.SubmissionNote,
				CreatedAt:          now,
				UpdatedAt:          now,
				CreatedBy:          &id.ID,
			}
			applyToShop(newShop, payload)
			if err := tx.Create(newShop).Error; err != nil {
				return err
			}
			// unlike admin creates, a failed tag attach aborts the
			// whole submission
			if err := repository.AttachShopTags(tx, newShop.ID, payload.TagIDs, id.ID); err != nil {
				return err
			}
			sub.ShopID = newShop.ID
		}
		return tx.Create(sub).Error
	})
	if err != nil {
		return nil, apperr.Internal("store submission", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(string(subType)).Inc()
	s.audit.Record(ctx, "submission.create", "submission", sub.ID, &id.ID, map[string]any{
		"type":    string(subType),
		"shop_id": sub.ShopID,
	})
	return sub, nil
}

// Mine lists the caller's own submissions. General accounts only, same
// as the submit path.
func (s *Service) Mine(ctx context.Context, id *identity.Identity, q ListQuery) ([]domain.UserSubmission, int64, int, int, error) {
	if err := identity.RequireGeneral(id); err != nil {
		return nil, 0, 0, 0, err
	}
	return s.list(ctx, repository.SubmissionFilters{
		Status:      domain.SubmissionStatus(q.Status),
		SubmitterID: id.ID,
		ShopID:      q.ShopID,
	}, q)
}

// ListAll is the moderation queue view.
func (s *Service) ListAll(ctx context.Context, id *identity.Identity, q ListQuery) ([]domain.UserSubmission, int64, int, int, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, 0, 0, 0, err
	}
	return s.list(ctx, repository.SubmissionFilters{
		Status: domain.SubmissionStatus(q.Status),
		ShopID: q.ShopID,
	}, q)
}

// Get returns one submission: the submitter sees their own, admins see
// everything.
func (s *Service) Get(ctx context.Context, id *identity.Identity, subID string) (*domain.UserSubmission, error) {
	if err := identity.RequireAuthenticated(id); err != nil {
		return nil, err
	}

	sub, err := s.subs.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, apperr.Internal("load submission", err)
	}

	if sub.SubmitterID != id.ID {
		if err := identity.RequireAdmin(id); err != nil {
			return nil, ErrSubmissionNotFound
		}
	}
	return sub, nil
}

// Review decides a pending submission and returns the action taken
// alongside the shop as it stands after the decision. The status
// transition and the shop-side effect commit in one transaction, so an
// approved submission can never leave its shop untouched. Reviewed
// submissions are immutable.
func (s *Service) Review(ctx context.Context, id *identity.Identity, subID string, req ReviewRequest) (*ReviewResult, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	now := s.now()
	var result *ReviewResult

	err := s.subs.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub domain.UserSubmission
		if err := tx.First(&sub, "id = ?", subID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if sub.Status != domain.SubmissionPending {
			return ErrAlreadyReviewed
		}

		var target domain.Shop
		if err := tx.First(&target, "id = ?", sub.ShopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShopNotFound
			}
			return err
		}

		payload, err := shop.ParsePayload(sub.SubmittedData)
		if err != nil {
			return apperr.Validation("INVALID_PAYLOAD", "stored submission data is corrupt")
		}

		switch req.Action {
		case "approve":
			sub.Status = domain.SubmissionApproved
			applyToShop(&target, payload)
			// reviewer corrections win over the submitted data
			if len(req.ShopUpdates) > 0 {
				overrides, err := shop.ParsePayload(req.ShopUpdates)
				if err != nil {
					return apperr.Validation("INVALID_PAYLOAD", "shop_updates is not a valid shop payload")
				}
				applyToShop(&target, overrides)
			}
			if sub.SubmissionType == domain.SubmissionNew {
				target.VerificationStatus = domain.VerificationVerified
				target.VerifiedAt = &now
				target.VerifiedBy = &id.ID
			}
		case "reject":
			sub.Status = domain.SubmissionRejected
			if sub.SubmissionType == domain.SubmissionNew {
				target.VerificationStatus = domain.VerificationRejected
				target.RejectionReason = req.ReviewNote
				target.VerifiedAt = &now
				target.VerifiedBy = &id.ID
			}
		}

		target.UpdatedAt = now
		target.UpdatedBy = &id.ID
		if err := tx.Save(&target).Error; err != nil {
			return err
		}

		sub.ReviewedAt = &now
		sub.ReviewedBy = &id.ID
		sub.ReviewNote = req.ReviewNote
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		result = &ReviewResult{
			Action:     string(sub.Status),
			Shop:       &target,
			Submission: &sub,
		}
		return nil
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal("review submission", err)
	}

	metrics.SubmissionReviewsTotal.WithLabelValues(req.Action).Inc()
	s.audit.Record(ctx, "submission.review", "submission", subID, &id.ID, map[string]any{
		"action": req.Action,
	})
	return result, nil
}

// History returns the audit trail of one submission.
func (s *Service) History(ctx context.Context, id *identity.Identity, subID string) ([]domain.AuditLog, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}
	entries, _, err := s.trail.ListByEntity(ctx, "submission", subID, 100, 0)
	if err != nil {
		return nil, apperr.Internal("load submission history", err)
	}
	return entries, nil
}

// HistoryForShop returns every submission filed for one shop, newest
// first.
func (s *Service) HistoryForShop(ctx context.Context, id *identity.Identity, shopID string) ([]domain.UserSubmission, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, apperr.Internal("load shop", err)
	}
	subs, err := s.subs.ListByShop(ctx, shopID)
	if err != nil {
		return nil, apperr.Internal("load shop submissions", err)
	}
	return subs, nil
}

func (s *Service) list(ctx context.Context, f repository.SubmissionFilters, q ListQuery) ([]domain.UserSubmission, int64, int, int, error) {
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
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	subs, total, err := s.subs.List(ctx, f)
	if err != nil {
		return nil, 0, 0, 0, apperr.Internal("list submissions", err)
	}
	return subs, total, page, perPage, nil
}

// applyToShop mirrors the shop module's field mapping for payloads that
// arrive through the submission pipeline.
func applyToShop(target *domain.Shop, p *shop.Payload) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.ShopType != nil {
		target.ShopType = p.ShopType
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Phone != nil {
		target.Phone = *p.Phone
	}
	if p.Latitude != nil {
		target.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		target.Longitude = p.Longitude
	}
	if p.BusinessHours != nil {
		target.BusinessHours = p.BusinessHours
	}
	if p.Is24Hours != nil {
		target.Is24Hours = p.Is24Hours
	}
	if p.GachaMachineCount != nil {
		target.GachaMachineCount = p.GachaMachineCount
	}
	if p.MainSeries != nil {
		target.MainSeries = p.MainSeries
	}
	if p.Sido != nil {
		target.Sido = *p.Sido
	}
	if p.Sigungu != nil {
		target.Sigungu = *p.Sigungu
	}
	if p.JibunAddress != nil {
		target.JibunAddress = *p.JibunAddress
	}
	if p.RoadAddress != nil {
		target.RoadAddress = *p.RoadAddress
	}
	if p.DetailAddress != nil {
		target.DetailAddress = *p.DetailAddress
	}
	if p.ZoneCode != nil {
		target.ZoneCode = *p.ZoneCode
	}
	if p.BuildingName != nil {
		target.BuildingName = *p.BuildingName
	}
	if p.SocialURLs != nil {
		target.SocialURLs = p.SocialURLs
	}
}
