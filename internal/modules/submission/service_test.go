package submission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/database"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := testDB(t)
	subs := repository.NewSubmissionRepository(db)
	shops := repository.NewShopRepository(db)
	trail := repository.NewAuditRepository(db)
	svc := NewService(subs, shops, trail, audit.NewRecorder(trail))
	return svc, db
}

func generalUser(id string) *identity.Identity {
	return &identity.Identity{Class: identity.ClassGeneral, ID: id, Role: domain.RoleGeneralUser}
}

func adminUser(id string) *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: id, Role: domain.RoleAdmin}
}

func ownerUser(id string) *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: id, Role: domain.RoleOwner}
}

func newShopData() map[string]any {
	return map[string]any{
		"name":         "Gacha Spot Gangnam",
		"shop_type":    []any{"gacha"},
		"sido":         "서울특별시",
		"road_address": "서울 강남구 테헤란로 1",
	}
}

func seedShop(t *testing.T, db *gorm.DB, status domain.VerificationStatus) *domain.Shop {
	s := &domain.Shop{
		ID:                 uuid.NewString(),
		Name:               "Existing Shop",
		ShopType:           []string{"figure"},
		Sido:               "부산광역시",
		RoadAddress:        "부산 해운대구 센텀로 99",
		VerificationStatus: status,
		DataSource:         domain.SourceAdminInput,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestSubmit_NewCreatesPendingShopAndSubmission(t *testing.T) {
	svc, db := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
		SubmissionNote: "found this place yesterday",
	}, "203.0.113.9", "test-agent")

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionPending, sub.Status)
	assert.NotEmpty(t, sub.ShopID)
	assert.Equal(t, "203.0.113.9", sub.IPAddress)

	var createdShop domain.Shop
	require.NoError(t, db.First(&createdShop, "id = ?", sub.ShopID).Error)
	assert.Equal(t, domain.VerificationPending, createdShop.VerificationStatus)
	assert.Equal(t, domain.SourceUserSubmit, createdShop.DataSource)
	assert.Equal(t, "Gacha Spot Gangnam", createdShop.Name)
}

func TestSubmit_GeneralClassOnly(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), adminUser("admin-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	assert.ErrorIs(t, err, identity.ErrForbidden)

	_, err = svc.Submit(context.Background(), ownerUser("owner-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestSubmit_UpdateNeedsExistingShop(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "update",
		ShopID:         "missing-shop",
		SubmittedData:  map[string]any{"description": "open till late"},
	}, "", "")

	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestSubmit_UpdateWithoutShopID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "correction",
		SubmittedData:  map[string]any{"description": "corrected"},
	}, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOP_ID_REQUIRED")
}

func TestSubmit_InvalidNewPayload(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  map[string]any{"name": "No Address Shop"},
	}, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestSubmit_SpamGuardAtFiveInWindow(t *testing.T) {
	svc, _ := newTestService(t)
	user := generalUser("spammer")

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(context.Background(), user, SubmitRequest{
			SubmissionType: "new",
			SubmittedData:  newShopData(),
		}, "", "")
		require.NoError(t, err, "submission %d should pass", i+1)
	}

	_, err := svc.Submit(context.Background(), user, SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")

	assert.ErrorIs(t, err, ErrTooManySubmissions)
}

func TestSubmit_SpamGuardWindowSlides(t *testing.T) {
	svc, db := newTestService(t)
	user := generalUser("patient-user")

	// five old submissions just outside the window
	old := time.Now().Add(-61 * time.Minute)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&domain.UserSubmission{
			ID:             uuid.NewString(),
			ShopID:         uuid.NewString(),
			SubmitterID:    user.ID,
			SubmissionType: domain.SubmissionNew,
			Status:         domain.SubmissionPending,
			SubmittedData:  map[string]any{},
			SubmittedAt:    old,
		}).Error)
	}

	_, err := svc.Submit(context.Background(), user, SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")

	require.NoError(t, err)
}

func TestSubmit_SpamGuardCountsRejectedToo(t *testing.T) {
	svc, db := newTestService(t)
	user := generalUser("user-1")

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&domain.UserSubmission{
			ID:             uuid.NewString(),
			ShopID:         uuid.NewString(),
			SubmitterID:    user.ID,
			SubmissionType: domain.SubmissionNew,
			Status:         domain.SubmissionRejected,
			SubmittedData:  map[string]any{},
			SubmittedAt:    time.Now().Add(-10 * time.Minute),
		}).Error)
	}

	_, err := svc.Submit(context.Background(), user, SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")

	assert.ErrorIs(t, err, ErrTooManySubmissions)
}

func TestReview_ApproveNewVerifiesShop(t *testing.T) {
	svc, db := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	res, err := svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{
		Action:     "approve",
		ReviewNote: "looks legit",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", res.Action)
	assert.Equal(t, domain.VerificationVerified, res.Shop.VerificationStatus)
	assert.Equal(t, domain.SubmissionApproved, res.Submission.Status)
	require.NotNil(t, res.Submission.ReviewedBy)
	assert.Equal(t, "admin-1", *res.Submission.ReviewedBy)

	var shopRow domain.Shop
	require.NoError(t, db.First(&shopRow, "id = ?", sub.ShopID).Error)
	assert.Equal(t, domain.VerificationVerified, shopRow.VerificationStatus)
	require.NotNil(t, shopRow.VerifiedBy)
	assert.Equal(t, "admin-1", *shopRow.VerifiedBy)
}

func TestReview_RejectNewMarksShopRejected(t *testing.T) {
	svc, db := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{
		Action:     "reject",
		ReviewNote: "duplicate listing",
	})
	require.NoError(t, err)

	var shopRow domain.Shop
	require.NoError(t, db.First(&shopRow, "id = ?", sub.ShopID).Error)
	assert.Equal(t, domain.VerificationRejected, shopRow.VerificationStatus)
	assert.Equal(t, "duplicate listing", shopRow.RejectionReason)
}

func TestReview_ApproveUpdateAppliesFields(t *testing.T) {
	svc, db := newTestService(t)
	target := seedShop(t, db, domain.VerificationVerified)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "update",
		ShopID:         target.ID,
		SubmittedData: map[string]any{
			"description":         "now open 24 hours",
			"is_24_hours":         true,
			"gacha_machine_count": float64(80),
		},
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{Action: "approve"})
	require.NoError(t, err)

	var updated domain.Shop
	require.NoError(t, db.First(&updated, "id = ?", target.ID).Error)
	assert.Equal(t, "now open 24 hours", updated.Description)
	require.NotNil(t, updated.Is24Hours)
	assert.True(t, *updated.Is24Hours)
	require.NotNil(t, updated.GachaMachineCount)
	assert.Equal(t, 80, *updated.GachaMachineCount)
	// untouched fields survive
	assert.Equal(t, "Existing Shop", updated.Name)
	assert.Equal(t, domain.VerificationVerified, updated.VerificationStatus)
}

func TestReview_ApproveMergesReviewerOverrides(t *testing.T) {
	svc, db := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	res, err := svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{
		Action: "approve",
		ShopUpdates: map[string]any{
			"name":  "Gacha Spot Gangnam Station",
			"phone": "02-555-6666",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gacha Spot Gangnam Station", res.Shop.Name)

	var shopRow domain.Shop
	require.NoError(t, db.First(&shopRow, "id = ?", sub.ShopID).Error)
	assert.Equal(t, "Gacha Spot Gangnam Station", shopRow.Name)
	assert.Equal(t, "02-555-6666", shopRow.Phone)
	assert.Equal(t, domain.VerificationVerified, shopRow.VerificationStatus)
}

func TestReview_SecondDecisionRejected(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{Action: "approve"})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminUser("admin-2"), sub.ID, ReviewRequest{Action: "reject"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReview_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Review(context.Background(), generalUser("user-1"), "any", ReviewRequest{Action: "approve"})
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestGet_SubmitterSeesOwnOthersDont(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), generalUser("user-1"), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = svc.Get(context.Background(), generalUser("user-2"), sub.ID)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	_, err = svc.Get(context.Background(), adminUser("admin-1"), sub.ID)
	require.NoError(t, err)
}

func TestMine_FiltersBySubmitter(t *testing.T) {
	svc, _ := newTestService(t)

	for _, user := range []string{"user-1", "user-2"} {
		_, err := svc.Submit(context.Background(), generalUser(user), SubmitRequest{
			SubmissionType: "new",
			SubmittedData:  newShopData(),
		}, "", "")
		require.NoError(t, err)
	}

	subs, total, page, perPage, err := svc.Mine(context.Background(), generalUser("user-1"), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, perPage)
	require.Len(t, subs, 1)
	assert.Equal(t, "user-1", subs[0].SubmitterID)

	_, _, _, _, err = svc.Mine(context.Background(), adminUser("admin-1"), ListQuery{})
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestListAll_AdminSeesQueue(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	subs, total, _, _, err := svc.ListAll(context.Background(), adminUser("admin-1"), ListQuery{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, subs, 1)

	_, _, _, _, err = svc.ListAll(context.Background(), generalUser("user-1"), ListQuery{})
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestHistory_ReturnsAuditTrail(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Submit(context.Background(), generalUser("user-1"), SubmitRequest{
		SubmissionType: "new",
		SubmittedData:  newShopData(),
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminUser("admin-1"), sub.ID, ReviewRequest{Action: "approve"})
	require.NoError(t, err)

	entries, err := svc.History(context.Background(), adminUser("admin-1"), sub.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	actions := []string{entries[0].Action, entries[1].Action}
	assert.Contains(t, actions, "submission.create")
	assert.Contains(t, actions, "submission.review")
}

func TestHistoryForShop_NewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	target := seedShop(t, db, domain.VerificationVerified)

	older := domain.UserSubmission{
		ID:             uuid.NewString(),
		ShopID:         target.ID,
		SubmitterID:    "user-1",
		SubmissionType: domain.SubmissionUpdate,
		Status:         domain.SubmissionApproved,
		SubmittedData:  map[string]any{"phone": "02-111-2222"},
		SubmittedAt:    time.Now().Add(-2 * time.Hour),
	}
	newer := domain.UserSubmission{
		ID:             uuid.NewString(),
		ShopID:         target.ID,
		SubmitterID:    "user-2",
		SubmissionType: domain.SubmissionUpdate,
		Status:         domain.SubmissionPending,
		SubmittedData:  map[string]any{"phone": "02-333-4444"},
		SubmittedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	subs, err := svc.HistoryForShop(context.Background(), adminUser("admin-1"), target.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, newer.ID, subs[0].ID)
	assert.Equal(t, older.ID, subs[1].ID)

	_, err = svc.HistoryForShop(context.Background(), generalUser("user-1"), target.ID)
	assert.ErrorIs(t, err, identity.ErrForbidden)

	_, err = svc.HistoryForShop(context.Background(), adminUser("admin-1"), uuid.NewString())
	assert.ErrorIs(t, err, ErrShopNotFound)
}
