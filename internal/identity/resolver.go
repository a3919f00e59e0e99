package identity

import (
	"context"

	"gachastore/internal/domain"
	"gachastore/internal/pkg/apperr"
)

type AccountClass string

const (
	ClassAdministrative AccountClass = "administrative"
	ClassGeneral        AccountClass = "general"
)

// Identity is a fully classified account attached to a request.
type Identity struct {
	Class   AccountClass
	ID      string
	Email   string
	Role    domain.Role
	Admin   *domain.AdminUser
	General *domain.GeneralUser
}

func (i *Identity) IsAdministrative() bool { return i.Class == ClassAdministrative }

// AdminDirectory looks up administrative accounts. Implementations return
// (nil, nil) when no record exists.
type AdminDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)
}

// GeneralDirectory looks up general accounts. Same (nil, nil) convention.
type GeneralDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.GeneralUser, error)
}

// Resolver turns bearer tokens into classified identities.
type Resolver struct {
	provider Provider
	admins   AdminDirectory
	generals GeneralDirectory
}

func NewResolver(provider Provider, admins AdminDirectory, generals GeneralDirectory) *Resolver {
	return &Resolver{provider: provider, admins: admins, generals: generals}
}

// Resolve verifies the token and classifies the account behind it.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	verified, err := r.provider.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return r.Classify(ctx, verified)
}

// Classify checks the administrative directory first, then the general
// one. An account in neither directory is rejected even with a valid
// token.
func (r *Resolver) Classify(ctx context.Context, verified *VerifiedIdentity) (*Identity, error) {
	admin, err := r.admins.FindByID(ctx, verified.ID)
	if err != nil {
		return nil, apperr.Internal("lookup admin account", err)
	}
	if admin != nil {
		if err := checkAdminAccess(admin); err != nil {
			return nil, err
		}
		return &Identity{
			Class: ClassAdministrative,
			ID:    admin.ID,
			Email: admin.Email,
			Role:  admin.Role,
			Admin: admin,
		}, nil
	}

	general, err := r.generals.FindByID(ctx, verified.ID)
	if err != nil {
		return nil, apperr.Internal("lookup general account", err)
	}
	if general != nil {
		if err := checkGeneralAccess(general); err != nil {
			return nil, err
		}
		return &Identity{
			Class:   ClassGeneral,
			ID:      general.ID,
			Email:   general.Email,
			Role:    domain.RoleGeneralUser,
			General: general,
		}, nil
	}

	return nil, ErrUnknownAccount
}

func checkAdminAccess(admin *domain.AdminUser) error {
	if admin.Status == domain.StatusDeleted {
		return ErrAccountDeleted
	}
	switch admin.ApprovalStatus {
	case domain.ApprovalPending:
		return ErrNotApproved
	case domain.ApprovalRejected:
		return ErrAccountRejected
	}
	if admin.Status == domain.StatusSuspended {
		return ErrAccountSuspended
	}
	return nil
}

func checkGeneralAccess(user *domain.GeneralUser) error {
	switch user.Status {
	case domain.StatusDeleted:
		return ErrAccountDeleted
	case domain.StatusSuspended:
		return ErrAccountSuspended
	}
	return nil
}
