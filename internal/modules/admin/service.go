package admin

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"gachastore/internal/audit"
	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/mailer"
	"gachastore/internal/pkg/metrics"
	"gachastore/internal/repository"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Service manages the administrative account lifecycle. Every mutation
// here is super-admin only and leaves an audit entry; approval and
// rejection also send a best-effort notification mail.
type Service struct {
	users AdminUserRepositoryInterface
	mail  mailer.Mailer
	audit *audit.Recorder
}

func NewService(users AdminUserRepositoryInterface, mail mailer.Mailer, auditRec *audit.Recorder) *Service {
	return &Service{users: users, mail: mail, audit: auditRec}
}

func (s *Service) List(ctx context.Context, id *identity.Identity, q ListQuery) ([]domain.AdminUser, int64, int, int, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, 0, 0, 0, err
	}

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

	users, total, err := s.users.List(ctx, repository.AdminUserFilters{
		Role:           domain.Role(q.Role),
		Status:         domain.AccountStatus(q.Status),
		ApprovalStatus: domain.ApprovalStatus(q.ApprovalStatus),
		Search:         q.Search,
		Limit:          perPage,
		Offset:         (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, 0, 0, apperr.Internal("list admin users", err)
	}
	return users, total, page, perPage, nil
}

func (s *Service) Get(ctx context.Context, id *identity.Identity, userID string) (*domain.AdminUser, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

// Approve moves a pending account to approved and unlocks sign-in.
func (s *Service) Approve(ctx context.Context, id *identity.Identity, userID string) (*domain.AdminUser, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.ApprovalStatus != domain.ApprovalPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	target.ApprovalStatus = domain.ApprovalApproved
	target.ApprovedAt = &now
	target.ApprovedBy = &id.ID
	target.UpdatedAt = now

	if err := s.users.Update(ctx, target); err != nil {
		return nil, apperr.Internal("approve admin user", err)
	}

	s.notify(func() error {
		return s.mail.SendApprovalNotice(target.Email, target.FullName)
	})
	s.audit.Record(ctx, "admin_user.approve", "admin_user", target.ID, &id.ID, nil)
	return target, nil
}

// Reject is terminal: a rejected account never gains access and the
// reason is kept for the applicant.
func (s *Service) Reject(ctx context.Context, id *identity.Identity, userID string, reason string) (*domain.AdminUser, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.ApprovalStatus != domain.ApprovalPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	target.ApprovalStatus = domain.ApprovalRejected
	target.RejectionReason = reason
	target.UpdatedAt = now

	if err := s.users.Update(ctx, target); err != nil {
		return nil, apperr.Internal("reject admin user", err)
	}

	s.notify(func() error {
		return s.mail.SendRejectionNotice(target.Email, target.FullName, reason)
	})
	s.audit.Record(ctx, "admin_user.reject", "admin_user", target.ID, &id.ID, map[string]any{
		"reason": reason,
	})
	return target, nil
}

// Suspend locks an approved account out. Super admins cannot suspend
// themselves or each other.
func (s *Service) Suspend(ctx context.Context, id *identity.Identity, userID string) (*domain.AdminUser, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}
	if id.ID == userID {
		return nil, ErrSelfAction
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Role == domain.RoleSuperAdmin {
		return nil, ErrSuperAdminTarget
	}
	if target.ApprovalStatus != domain.ApprovalApproved {
		return nil, ErrAccountNotApproved
	}
	if target.Status == domain.StatusSuspended {
		return nil, ErrAlreadySuspended
	}

	target.Status = domain.StatusSuspended
	target.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, target); err != nil {
		return nil, apperr.Internal("suspend admin user", err)
	}

	s.audit.Record(ctx, "admin_user.suspend", "admin_user", target.ID, &id.ID, nil)
	return target, nil
}

// Activate lifts a suspension.
func (s *Service) Activate(ctx context.Context, id *identity.Identity, userID string) (*domain.AdminUser, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Status != domain.StatusSuspended {
		return nil, ErrNotSuspended
	}

	target.Status = domain.StatusActive
	target.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, target); err != nil {
		return nil, apperr.Internal("activate admin user", err)
	}

	s.audit.Record(ctx, "admin_user.activate", "admin_user", target.ID, &id.ID, nil)
	return target, nil
}

// Delete marks an account deleted. There is no undo and no hard
// delete; the row stays for audit purposes.
func (s *Service) Delete(ctx context.Context, id *identity.Identity, userID string) error {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return err
	}
	if id.ID == userID {
		return ErrSelfAction
	}

	target, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin {
		return ErrSuperAdminTarget
	}
	if target.Status == domain.StatusDeleted {
		return ErrAlreadyDeleted
	}

	target.Status = domain.StatusDeleted
	target.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, target); err != nil {
		return apperr.Internal("delete admin user", err)
	}

	s.audit.Record(ctx, "admin_user.delete", "admin_user", target.ID, &id.ID, nil)
	return nil
}

func (s *Service) Stats(ctx context.Context, id *identity.Identity) (*StatsResponse, error) {
	if err := identity.RequireSuperAdmin(id); err != nil {
		return nil, err
	}

	counts, err := s.users.CountByApproval(ctx)
	if err != nil {
		return nil, apperr.Internal("count admin users", err)
	}

	stats := &StatsResponse{
		Pending:  counts[domain.ApprovalPending],
		Approved: counts[domain.ApprovalApproved],
		Rejected: counts[domain.ApprovalRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

func (s *Service) load(ctx context.Context, userID string) (*domain.AdminUser, error) {
	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal("load admin user", err)
	}
	return target, nil
}

// notify runs a mail send without letting a failure surface to the
// caller.
func (s *Service) notify(send func() error) {
	if err := send(); err != nil {
		metrics.SideEffectFailures.WithLabelValues("mail").Inc()
		log.Printf("notification mail failed: %v", err)
	}
}
