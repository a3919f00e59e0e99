package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
)

// Service handles account registration and sign-in. Credentials never
// touch this package: they go straight to the identity provider.
type Service struct {
	provider identity.Provider
	resolver *identity.Resolver
	admins   AdminUserRepositoryInterface
	generals GeneralUserRepositoryInterface
	shops    ShopLinkRepositoryInterface
}

func NewService(
	provider identity.Provider,
	resolver *identity.Resolver,
	admins AdminUserRepositoryInterface,
	generals GeneralUserRepositoryInterface,
	shops ShopLinkRepositoryInterface,
) *Service {
	return &Service{
		provider: provider,
		resolver: resolver,
		admins:   admins,
		generals: generals,
		shops:    shops,
	}
}

// Signup registers a new account. Administrative roles land in pending
// approval and cannot sign in until a super admin approves them.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	switch domain.Role(req.Role) {
	case domain.RoleAdmin, domain.RoleOwner:
		return s.signupAdmin(ctx, email, req)
	case domain.RoleGeneralUser:
		return s.signupGeneral(ctx, email, req)
	default:
		return nil, ErrInvalidRole
	}
}

func (s *Service) signupAdmin(ctx context.Context, email string, req SignupRequest) (*AccountResponse, error) {
	role := domain.Role(req.Role)

	// an owner account is tied to exactly one shop from day one; the
	// link stays unverified until an admin confirms it
	if role == domain.RoleOwner {
		if req.ShopID == "" || req.Phone == "" {
			return nil, ErrOwnerShopRequired
		}
		if _, err := s.shops.GetByID(ctx, req.ShopID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShopNotFound
			}
			return nil, apperr.Internal("load shop", err)
		}
	}

	now := time.Now()
	admin := &domain.AdminUser{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       req.FullName,
		Role:           role,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.provider.CreateAccount(ctx, admin.ID, email, req.Password); err != nil {
		return nil, err
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		// roll the credentials back so the email is not burned
		_ = s.provider.DeleteAccount(ctx, admin.ID)
		return nil, apperr.Internal("create admin account", err)
	}

	if role == domain.RoleOwner {
		link := &domain.ShopOwner{
			ID:           uuid.NewString(),
			ShopID:       req.ShopID,
			OwnerID:      admin.ID,
			Phone:        req.Phone,
			BusinessName: req.BusinessName,
			CreatedAt:    now,
		}
		if err := s.shops.CreateOwnerLink(ctx, link); err != nil {
			return nil, apperr.Internal("create ownership link", err)
		}
	}

	return adminToResponse(admin), nil
}

func (s *Service) signupGeneral(ctx context.Context, email string, req SignupRequest) (*AccountResponse, error) {
	now := time.Now()
	user := &domain.GeneralUser{
		ID:        uuid.NewString(),
		Email:     email,
		Nickname:  req.Nickname,
		FullName:  req.FullName,
		Status:    domain.StatusActive,
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.provider.CreateAccount(ctx, user.ID, email, req.Password); err != nil {
		return nil, err
	}
	if err := s.generals.Create(ctx, user); err != nil {
		_ = s.provider.DeleteAccount(ctx, user.ID)
		return nil, apperr.Internal("create general account", err)
	}

	return generalToResponse(user), nil
}

// Signin checks credentials with the provider, then classifies the
// account. A pending or suspended administrative account fails here
// even with the right password.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	accountID, token, err := s.provider.SignIn(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.resolver.Classify(ctx, &identity.VerifiedIdentity{ID: accountID, Email: email})
	if err != nil {
		return nil, err
	}

	if id.IsAdministrative() {
		now := time.Now()
		id.Admin.LastLoginAt = &now
		if err := s.admins.Update(ctx, id.Admin); err != nil {
			return nil, apperr.Internal("record last login", err)
		}
	}

	return &SigninResponse{Account: *identityToResponse(id), Token: token}, nil
}

// Me returns the profile of an already classified identity.
func (s *Service) Me(id *identity.Identity) *AccountResponse {
	return identityToResponse(id)
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal("check admin email", err)
	}

	if _, err := s.generals.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal("check general email", err)
	}

	return nil
}

func adminToResponse(a *domain.AdminUser) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Email:          a.Email,
		FullName:       a.FullName,
		Role:           string(a.Role),
		Status:         string(a.Status),
		ApprovalStatus: string(a.ApprovalStatus),
		LastLoginAt:    a.LastLoginAt,
		CreatedAt:      a.CreatedAt,
	}
}

func generalToResponse(u *domain.GeneralUser) *AccountResponse {
	return &AccountResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Nickname:  u.Nickname,
		Role:      string(domain.RoleGeneralUser),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

func identityToResponse(id *identity.Identity) *AccountResponse {
	if id.IsAdministrative() {
		return adminToResponse(id.Admin)
	}
	return generalToResponse(id.General)
}
