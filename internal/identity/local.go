package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/jwt"
)

// credentialRow is the provider's private credential store. Only the
// local provider reads or writes it.
type credentialRow struct {
	AccountID    string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (credentialRow) TableName() string { return "auth_credentials" }

// LocalProvider implements Provider with bcrypt-hashed credentials and
// HS256 access tokens.
type LocalProvider struct {
	db  *gorm.DB
	jwt *jwt.Manager
}

func NewLocalProvider(db *gorm.DB, manager *jwt.Manager) *LocalProvider {
	return &LocalProvider{db: db, jwt: manager}
}

// Migrate creates the credential table. Called once at startup.
func (p *LocalProvider) Migrate() error {
	return p.db.AutoMigrate(&credentialRow{})
}

func (p *LocalProvider) VerifyToken(ctx context.Context, token string) (*VerifiedIdentity, error) {
	claims, err := p.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &VerifiedIdentity{ID: claims.UserID, Email: claims.Email}, nil
}

func (p *LocalProvider) CreateAccount(ctx context.Context, accountID, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	row := credentialRow{AccountID: accountID, Email: email, PasswordHash: string(hash)}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return apperr.Internal("store credentials", err)
	}
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, string, error) {
	var row credentialRow
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", apperr.Internal("load credentials", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err := p.jwt.Generate(row.AccountID, row.Email, "")
	if err != nil {
		return "", "", apperr.Internal("sign token", err)
	}
	return row.AccountID, token, nil
}

func (p *LocalProvider) DeleteAccount(ctx context.Context, accountID string) error {
	return p.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&credentialRow{}).Error
}
