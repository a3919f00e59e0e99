package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"gachastore/internal/database"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	jwtsvc "gachastore/internal/pkg/jwt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "gachastore.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	provider := identity.NewLocalProvider(db, jwtsvc.NewManager("seed-only", time.Hour))
	if err := provider.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM user_submissions")
	db.Exec("DELETE FROM shop_tags")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM shop_owners")
	db.Exec("DELETE FROM shops")
	db.Exec("DELETE FROM menu_permissions")
	db.Exec("DELETE FROM menus")
	db.Exec("DELETE FROM general_users")
	db.Exec("DELETE FROM admin_users")
	db.Exec("DELETE FROM auth_credentials")

	ctx := context.Background()
	now := time.Now()

	// ================== ACCOUNTS ==================
	log.Println("Creating accounts...")

	super := domain.AdminUser{
		ID:             uuid.NewString(),
		Email:          "super@gachastore.kr",
		FullName:       "Super Admin",
		Role:           domain.RoleSuperAdmin,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalApproved,
		ApprovedAt:     &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Create(&super)
	mustCreateCredential(ctx, provider, super.ID, super.Email, "super123")

	admin := domain.AdminUser{
		ID:             uuid.NewString(),
		Email:          "admin@gachastore.kr",
		FullName:       "Shop Curator",
		Role:           domain.RoleAdmin,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalApproved,
		ApprovedAt:     &now,
		ApprovedBy:     &super.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Create(&admin)
	mustCreateCredential(ctx, provider, admin.ID, admin.Email, "admin123")

	pending := domain.AdminUser{
		ID:             uuid.NewString(),
		Email:          "pending@gachastore.kr",
		FullName:       "Pending Curator",
		Role:           domain.RoleAdmin,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Create(&pending)
	mustCreateCredential(ctx, provider, pending.ID, pending.Email, "pending123")

	owner := domain.AdminUser{
		ID:             uuid.NewString(),
		Email:          "owner@gachastore.kr",
		FullName:       "Gacha Shop Owner",
		Role:           domain.RoleOwner,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalApproved,
		ApprovedAt:     &now,
		ApprovedBy:     &super.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Create(&owner)
	mustCreateCredential(ctx, provider, owner.ID, owner.Email, "owner123")

	general := domain.GeneralUser{
		ID:        uuid.NewString(),
		Email:     "user@gachastore.kr",
		Nickname:  "gacha_fan",
		FullName:  "General User",
		Status:    domain.StatusActive,
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.Create(&general)
	mustCreateCredential(ctx, provider, general.ID, general.Email, "user123")

	// ================== MENUS ==================
	log.Println("Creating menus...")

	shopMenu := domain.Menu{
		ID: uuid.NewString(), Code: "shops", Name: "Shop Management",
		DisplayOrder: 1, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&shopMenu)

	shopListMenu := domain.Menu{
		ID: uuid.NewString(), Code: "shops.list", Name: "Shop Directory",
		ParentID: &shopMenu.ID, DisplayOrder: 1, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&shopListMenu)

	submissionMenu := domain.Menu{
		ID: uuid.NewString(), Code: "submissions", Name: "Submission Review",
		DisplayOrder: 2, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&submissionMenu)

	userMenu := domain.Menu{
		ID: uuid.NewString(), Code: "users", Name: "User Management",
		DisplayOrder: 3, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&userMenu)

	for _, menuID := range []string{shopMenu.ID, shopListMenu.ID, submissionMenu.ID} {
		db.Create(&domain.MenuPermission{
			ID: uuid.NewString(), AdminID: admin.ID, MenuID: menuID,
			GrantedBy: super.ID, GrantedAt: now,
		})
	}

	// ================== TAGS ==================
	log.Println("Creating tags...")

	tags := make([]domain.Tag, 0, 4)
	for _, name := range []string{"capsule toys", "anime figures", "claw machines", "24 hours"} {
		t := domain.Tag{
			ID: uuid.NewString(), Name: name,
			CreatedAt: now, UpdatedAt: now, CreatedBy: &super.ID,
		}
		db.Create(&t)
		tags = append(tags, t)
	}

	// ================== SHOPS ==================
	log.Println("Creating shops...")

	lat, lon := 37.5665, 126.9780
	count := 120
	verified := domain.Shop{
		ID:                 uuid.NewString(),
		Name:               "Gacha World Hongdae",
		ShopType:           []string{"gacha", "figure"},
		Description:        "Three floors of capsule machines near Hongik University",
		Phone:              "02-1234-5678",
		Latitude:           &lat,
		Longitude:          &lon,
		GachaMachineCount:  &count,
		Sido:               "서울특별시",
		Sigungu:            "마포구",
		RoadAddress:        "서울특별시 마포구 홍익로 12",
		VerificationStatus: domain.VerificationVerified,
		DataSource:         domain.SourceAdminInput,
		VerifiedAt:         &now,
		VerifiedBy:         &admin.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          &admin.ID,
	}
	db.Create(&verified)
	db.Create(&domain.ShopTag{ShopID: verified.ID, TagID: tags[0].ID, CreatedBy: &admin.ID, CreatedAt: now})
	db.Create(&domain.ShopTag{ShopID: verified.ID, TagID: tags[1].ID, CreatedBy: &admin.ID, CreatedAt: now})

	ownerShop := domain.Shop{
		ID:                 uuid.NewString(),
		Name:               "Figure Base Gangnam",
		ShopType:           []string{"figure"},
		Sido:               "서울특별시",
		Sigungu:            "강남구",
		RoadAddress:        "서울특별시 강남구 테헤란로 31",
		VerificationStatus: domain.VerificationPending,
		DataSource:         domain.SourceUserInput,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          &owner.ID,
	}
	db.Create(&ownerShop)
	db.Create(&domain.ShopOwner{
		ID: uuid.NewString(), ShopID: ownerShop.ID, OwnerID: owner.ID,
		Phone: "010-9876-5432", BusinessName: "Figure Base Co.",
		Verified: true, VerifiedAt: &now, CreatedAt: now,
	})

	// ================== SUBMISSIONS ==================
	log.Println("Creating submissions...")

	submittedShop := domain.Shop{
		ID:                 uuid.NewString(),
		Name:               "Claw Heaven Busan",
		ShopType:           []string{"claw"},
		Sido:               "부산광역시",
		RoadAddress:        "부산광역시 해운대구 구남로 8",
		VerificationStatus: domain.VerificationPending,
		DataSource:         domain.SourceUserSubmit,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          &general.ID,
	}
	db.Create(&submittedShop)
	db.Create(&domain.UserSubmission{
		ID:             uuid.NewString(),
		ShopID:         submittedShop.ID,
		SubmitterID:    general.ID,
		SubmissionType: domain.SubmissionNew,
		Status:         domain.SubmissionPending,
		SubmittedData: map[string]any{
			"name":         submittedShop.Name,
			"shop_type":    []string{"claw"},
			"sido":         submittedShop.Sido,
			"road_address": submittedShop.RoadAddress,
		},
		SubmittedAt: now,
	})

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Super admin: super@gachastore.kr / super123")
	log.Println("Admin:       admin@gachastore.kr / admin123")
	log.Println("Pending:     pending@gachastore.kr / pending123")
	log.Println("Owner:       owner@gachastore.kr / owner123")
	log.Println("General:     user@gachastore.kr / user123")
}

func mustCreateCredential(ctx context.Context, provider *identity.LocalProvider, id, email, password string) {
	if err := provider.CreateAccount(ctx, id, email, password); err != nil {
		log.Fatalf("credential for %s failed: %v", email, err)
	}
}
