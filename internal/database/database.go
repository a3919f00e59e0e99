package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"gachastore/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates every table the API touches.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.AdminUser{},
		&domain.GeneralUser{},
		&domain.Menu{},
		&domain.MenuPermission{},
		&domain.Shop{},
		&domain.ShopOwner{},
		&domain.ShopTag{},
		&domain.UserSubmission{},
		&domain.Tag{},
		&domain.AuditLog{},
	)
}
