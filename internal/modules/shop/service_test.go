package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/repository"
)

type mockShopRepo struct{ mock.Mock }

func (m *mockShopRepo) Create(ctx context.Context, s *domain.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShopRepo) Update(ctx context.Context, s *domain.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShopRepo) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *mockShopRepo) List(ctx context.Context, f repository.ShopFilters) ([]domain.Shop, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *mockShopRepo) SoftDelete(ctx context.Context, id string, deletedBy string) error {
	return m.Called(ctx, id, deletedBy).Error(0)
}

func (m *mockShopRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shop), args.Error(1)
}

func (m *mockShopRepo) IsVerifiedOwner(ctx context.Context, shopID, ownerID string) (bool, error) {
	args := m.Called(ctx, shopID, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockShopRepo) CreateOwnerLink(ctx context.Context, link *domain.ShopOwner) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockShopRepo) GetOwnerLink(ctx context.Context, shopID, ownerID string) (*domain.ShopOwner, error) {
	args := m.Called(ctx, shopID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopOwner), args.Error(1)
}

func (m *mockShopRepo) UpdateOwnerLink(ctx context.Context, link *domain.ShopOwner) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockShopRepo) ListTags(ctx context.Context, shopID string) ([]domain.Tag, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockShopRepo) AttachTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error {
	return m.Called(ctx, shopID, tagIDs, actorID).Error(0)
}

func (m *mockShopRepo) ReplaceTags(ctx context.Context, shopID string, tagIDs []string, actorID string) error {
	return m.Called(ctx, shopID, tagIDs, actorID).Error(0)
}

type noopAuditStore struct{}

func (noopAuditStore) Create(ctx context.Context, entry *domain.AuditLog) error { return nil }

func adminID() *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: "admin-1", Role: domain.RoleAdmin}
}

func ownerID() *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: "owner-1", Role: domain.RoleOwner}
}

func generalID() *identity.Identity {
	return &identity.Identity{Class: identity.ClassGeneral, ID: "user-1", Role: domain.RoleGeneralUser}
}

func newSvc(repo *mockShopRepo) *Service {
	return NewService(repo, audit.NewRecorder(noopAuditStore{}))
}

func TestCreate_AdminShopsGoLiveVerified(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.VerificationStatus == domain.VerificationVerified &&
			s.DataSource == domain.SourceAdminInput &&
			s.VerifiedBy != nil
	})).Return(nil)

	svc := newSvc(repo)
	shop, err := svc.Create(context.Background(), adminID(), completePayload())

	require.NoError(t, err)
	assert.Equal(t, domain.VerificationVerified, shop.VerificationStatus)
	repo.AssertNotCalled(t, "CreateOwnerLink", mock.Anything, mock.Anything)
}

func TestCreate_OnlyAdminsMayCreateDirectly(t *testing.T) {
	svc := newSvc(new(mockShopRepo))

	_, err := svc.Create(context.Background(), ownerID(), completePayload())
	assert.ErrorIs(t, err, identity.ErrForbidden)

	_, err = svc.Create(context.Background(), generalID(), completePayload())
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestSubmit_OwnerShopsStartPendingWithLink(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.VerificationStatus == domain.VerificationPending &&
			s.DataSource == domain.SourceUserInput
	})).Return(nil)
	repo.On("CreateOwnerLink", mock.Anything, mock.MatchedBy(func(l *domain.ShopOwner) bool {
		return l.OwnerID == "owner-1" && !l.Verified
	})).Return(nil)

	svc := newSvc(repo)
	shop, err := svc.Submit(context.Background(), ownerID(), completePayload())

	require.NoError(t, err)
	assert.Equal(t, domain.VerificationPending, shop.VerificationStatus)
	repo.AssertExpectations(t)
}

func TestSubmit_GeneralUserGetsNoOwnerLink(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.VerificationStatus == domain.VerificationPending &&
			s.DataSource == domain.SourceUserInput
	})).Return(nil)

	svc := newSvc(repo)
	_, err := svc.Submit(context.Background(), generalID(), completePayload())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "CreateOwnerLink", mock.Anything, mock.Anything)
}

func TestSubmit_AnonymousRejected(t *testing.T) {
	svc := newSvc(new(mockShopRepo))
	_, err := svc.Submit(context.Background(), nil, completePayload())
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestCreate_InvalidPayload(t *testing.T) {
	svc := newSvc(new(mockShopRepo))
	_, err := svc.Create(context.Background(), adminID(), &Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestGet_UnverifiedHiddenFromPublic(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationPending,
	}, nil)

	svc := newSvc(repo)
	_, err := svc.Get(context.Background(), nil, "s1")

	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestGet_UnverifiedVisibleToAdmin(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationPending,
	}, nil)
	repo.On("ListTags", mock.Anything, "s1").Return([]domain.Tag{{ID: "t1", Name: "capsule"}}, nil)

	svc := newSvc(repo)
	shop, err := svc.Get(context.Background(), adminID(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "s1", shop.ID)
	assert.Len(t, shop.Tags, 1)
}

func TestGet_UnverifiedVisibleToVerifiedOwner(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationPending,
	}, nil)
	repo.On("IsVerifiedOwner", mock.Anything, "s1", "owner-1").Return(true, nil)
	repo.On("ListTags", mock.Anything, "s1").Return([]domain.Tag{}, nil)

	svc := newSvc(repo)
	_, err := svc.Get(context.Background(), ownerID(), "s1")
	require.NoError(t, err)
}

func TestList_PublicOnlySeesVerified(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ShopFilters) bool {
		return !f.IncludeUnverified
	})).Return([]domain.Shop{}, int64(0), nil)

	svc := newSvc(repo)
	_, _, _, _, err := svc.List(context.Background(), nil, ListQuery{})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_OwnerScopedToVerifiedOwnership(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ShopFilters) bool {
		return f.OwnerID == "owner-1" && f.IncludeUnverified
	})).Return([]domain.Shop{}, int64(0), nil)

	svc := newSvc(repo)
	_, _, _, _, err := svc.List(context.Background(), ownerID(), ListQuery{})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_AdminCanFilterByStatus(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ShopFilters) bool {
		return f.IncludeUnverified && f.VerificationStatus == domain.VerificationPending
	})).Return([]domain.Shop{}, int64(0), nil)

	svc := newSvc(repo)
	_, _, _, _, err := svc.List(context.Background(), adminID(), ListQuery{Status: "pending"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_OwnerNeedsVerifiedLink(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("IsVerifiedOwner", mock.Anything, "s1", "owner-1").Return(false, nil)

	svc := newSvc(repo)
	_, err := svc.Update(context.Background(), ownerID(), "s1", &Payload{
		Description: strPtr("updated"),
	})

	assert.ErrorIs(t, err, ErrNotShopOwner)
}

func TestUpdate_OwnerIdentityFieldsSilentlyDropped(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1", Name: "Original"}, nil)
	repo.On("IsVerifiedOwner", mock.Anything, "s1", "owner-1").Return(true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.Name == "Original" && s.Description == "still mine"
	})).Return(nil)

	svc := newSvc(repo)
	shop, err := svc.Update(context.Background(), ownerID(), "s1", &Payload{
		Name:        strPtr("Hijacked Name"),
		Description: strPtr("still mine"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Original", shop.Name)
	repo.AssertExpectations(t)
}

func TestUpdate_OwnerMayEditOperationalFields(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("IsVerifiedOwner", mock.Anything, "s1", "owner-1").Return(true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.Description == "new hours posted" && s.GachaMachineCount != nil
	})).Return(nil)

	svc := newSvc(repo)
	_, err := svc.Update(context.Background(), ownerID(), "s1", &Payload{
		Description:       strPtr("new hours posted"),
		GachaMachineCount: intPtr(44),
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_AdminMayEditAnything(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.Name == "Renamed"
	})).Return(nil)

	svc := newSvc(repo)
	_, err := svc.Update(context.Background(), adminID(), "s1", &Payload{
		Name: strPtr("Renamed"),
	})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "IsVerifiedOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_OnlyPendingShops(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationVerified,
	}, nil)

	svc := newSvc(repo)
	_, err := svc.Verify(context.Background(), adminID(), "s1", VerifyRequest{Action: "approve"})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestVerify_RejectNeedsReason(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationPending,
	}, nil)

	svc := newSvc(repo)
	_, err := svc.Verify(context.Background(), adminID(), "s1", VerifyRequest{Action: "reject"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REASON_REQUIRED")
}

func TestVerify_ApproveStampsReviewer(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{
		ID:                 "s1",
		VerificationStatus: domain.VerificationPending,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.VerificationStatus == domain.VerificationVerified &&
			s.VerifiedBy != nil && *s.VerifiedBy == "admin-1"
	})).Return(nil)

	svc := newSvc(repo)
	shop, err := svc.Verify(context.Background(), adminID(), "s1", VerifyRequest{Action: "approve"})

	require.NoError(t, err)
	assert.NotNil(t, shop.VerifiedAt)
}

func TestClaim_DuplicateRejected(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("GetOwnerLink", mock.Anything, "s1", "owner-1").Return(&domain.ShopOwner{}, nil)

	svc := newSvc(repo)
	_, err := svc.Claim(context.Background(), ownerID(), "s1", ClaimRequest{})

	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestVerifyOwner_SetsVerified(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetOwnerLink", mock.Anything, "s1", "owner-1").Return(&domain.ShopOwner{
		ID: "link-1", ShopID: "s1", OwnerID: "owner-1",
	}, nil)
	repo.On("UpdateOwnerLink", mock.Anything, mock.MatchedBy(func(l *domain.ShopOwner) bool {
		return l.Verified && l.VerifiedAt != nil
	})).Return(nil)

	svc := newSvc(repo)
	link, err := svc.VerifyOwner(context.Background(), adminID(), "s1", "owner-1")

	require.NoError(t, err)
	assert.True(t, link.Verified)
}

func TestCreate_TagAttachFailureIsNonFatal(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("AttachTags", mock.Anything, mock.Anything, []string{"t1"}, "admin-1").
		Return(errors.New("constraint violation"))

	p := completePayload()
	p.TagIDs = []string{"t1"}

	svc := newSvc(repo)
	shop, err := svc.Create(context.Background(), adminID(), p)

	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
}

func TestUpdate_AdminReplacesTags(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("ReplaceTags", mock.Anything, "s1", []string{"t1", "t2"}, "admin-1").Return(nil)

	svc := newSvc(repo)
	_, err := svc.Update(context.Background(), adminID(), "s1", &Payload{
		TagIDs: []string{"t1", "t2"},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_OwnerTagChangesSilentlyDropped(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("IsVerifiedOwner", mock.Anything, "s1", "owner-1").Return(true, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := newSvc(repo)
	_, err := svc.Update(context.Background(), ownerID(), "s1", &Payload{
		TagIDs: []string{"t1"},
	})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_SuperAdminOnly(t *testing.T) {
	svc := newSvc(new(mockShopRepo))
	err := svc.Delete(context.Background(), adminID(), "s1")
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Shop{ID: "s1"}, nil)
	repo.On("SoftDelete", mock.Anything, "s1", "super-1").Return(nil)

	svc := newSvc(repo)
	super := &identity.Identity{Class: identity.ClassAdministrative, ID: "super-1", Role: domain.RoleSuperAdmin}
	err := svc.Delete(context.Background(), super, "s1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVerifyOwner_MissingLink(t *testing.T) {
	repo := new(mockShopRepo)
	repo.On("GetOwnerLink", mock.Anything, "s1", "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := newSvc(repo)
	_, err := svc.VerifyOwner(context.Background(), adminID(), "s1", "ghost")

	assert.ErrorIs(t, err, ErrLinkNotFound)
}
