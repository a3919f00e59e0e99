package tag

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/repository"
)

// Service handles the shared tag vocabulary. Reads are public; every
// mutation is restricted to administrative accounts.
type Service struct {
	tags  TagRepositoryInterface
	audit *audit.Recorder
}

func NewService(tags TagRepositoryInterface, auditRec *audit.Recorder) *Service {
	return &Service{tags: tags, audit: auditRec}
}

func (s *Service) List(ctx context.Context) ([]repository.TagWithCount, error) {
	tags, err := s.tags.ListWithShopCounts(ctx)
	if err != nil {
		return nil, apperr.Internal("list tags", err)
	}
	return tags, nil
}

func (s *Service) Create(ctx context.Context, id *identity.Identity, req CreateRequest) (*domain.Tag, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if existing, err := s.tags.FindByName(ctx, name); err != nil {
		return nil, apperr.Internal("check tag name", err)
	} else if existing != nil {
		return nil, ErrTagNameTaken
	}

	now := time.Now()
	t := &domain.Tag{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   &id.ID,
	}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, apperr.Internal("create tag", err)
	}

	s.audit.Record(ctx, "tag.create", "tag", t.ID, &id.ID, map[string]any{"name": t.Name})
	return t, nil
}

func (s *Service) Update(ctx context.Context, id *identity.Identity, tagID string, req UpdateRequest) (*domain.Tag, error) {
	if err := identity.RequireAdmin(id); err != nil {
		return nil, err
	}

	t, err := s.load(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, t.Name) {
			if existing, err := s.tags.FindByName(ctx, name); err != nil {
				return nil, apperr.Internal("check tag name", err)
			} else if existing != nil {
				return nil, ErrTagNameTaken
			}
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	t.UpdatedAt = time.Now()
	t.UpdatedBy = &id.ID

	if err := s.tags.Update(ctx, t); err != nil {
		return nil, apperr.Internal("update tag", err)
	}

	s.audit.Record(ctx, "tag.update", "tag", t.ID, &id.ID, nil)
	return t, nil
}

// Delete soft-deletes a tag. Tags still attached to shops are
// protected; detach them first through shop updates.
func (s *Service) Delete(ctx context.Context, id *identity.Identity, tagID string) error {
	if err := identity.RequireAdmin(id); err != nil {
		return err
	}

	if _, err := s.load(ctx, tagID); err != nil {
		return err
	}

	attached, err := s.tags.CountAttachments(ctx, tagID)
	if err != nil {
		return apperr.Internal("count tag attachments", err)
	}
	if attached > 0 {
		return ErrTagInUse
	}

	if err := s.tags.SoftDelete(ctx, tagID, id.ID); err != nil {
		return apperr.Internal("delete tag", err)
	}

	s.audit.Record(ctx, "tag.delete", "tag", tagID, &id.ID, nil)
	return nil
}

func (s *Service) load(ctx context.Context, tagID string) (*domain.Tag, error) {
	t, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, apperr.Internal("load tag", err)
	}
	return t, nil
}
