package admin

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

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.AdminUser) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, f repository.AdminUserFilters) ([]domain.AdminUser, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AdminUser), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) CountByApproval(ctx context.Context) (map[domain.ApprovalStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ApprovalStatus]int64), args.Error(1)
}

type recordingMailer struct {
	approvals  []string
	rejections []string
	fail       bool
}

func (m *recordingMailer) SendApprovalNotice(to, fullName string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.approvals = append(m.approvals, to)
	return nil
}

func (m *recordingMailer) SendRejectionNotice(to, fullName, reason string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.rejections = append(m.rejections, to)
	return nil
}

type noopAuditStore struct{}

func (noopAuditStore) Create(ctx context.Context, entry *domain.AuditLog) error { return nil }

func superAdmin() *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: "super-1", Role: domain.RoleSuperAdmin}
}

func plainAdmin() *identity.Identity {
	return &identity.Identity{Class: identity.ClassAdministrative, ID: "admin-1", Role: domain.RoleAdmin}
}

func pendingUser(id string) *domain.AdminUser {
	return &domain.AdminUser{
		ID:             id,
		Email:          id + "@example.com",
		FullName:       "Pending Person",
		Role:           domain.RoleAdmin,
		Status:         domain.StatusActive,
		ApprovalStatus: domain.ApprovalPending,
	}
}

func newTestService(repo *mockUserRepo, mail *recordingMailer) *Service {
	return NewService(repo, mail, audit.NewRecorder(noopAuditStore{}))
}

func TestApprove_PendingUser(t *testing.T) {
	repo := new(mockUserRepo)
	mail := &recordingMailer{}
	repo.On("GetByID", mock.Anything, "u1").Return(pendingUser("u1"), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.ApprovalStatus == domain.ApprovalApproved &&
			u.ApprovedAt != nil && u.ApprovedBy != nil && *u.ApprovedBy == "super-1"
	})).Return(nil)

	svc := newTestService(repo, mail)
	user, err := svc.Approve(context.Background(), superAdmin(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, user.ApprovalStatus)
	assert.Equal(t, []string{"u1@example.com"}, mail.approvals)
}

func TestApprove_RequiresSuperAdmin(t *testing.T) {
	svc := newTestService(new(mockUserRepo), &recordingMailer{})
	_, err := svc.Approve(context.Background(), plainAdmin(), "u1")
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	repo := new(mockUserRepo)
	decided := pendingUser("u1")
	decided.ApprovalStatus = domain.ApprovalApproved
	repo.On("GetByID", mock.Anything, "u1").Return(decided, nil)

	svc := newTestService(repo, &recordingMailer{})
	_, err := svc.Approve(context.Background(), superAdmin(), "u1")

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestApprove_MailFailureDoesNotFailRequest(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(pendingUser("u1"), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo, &recordingMailer{fail: true})
	_, err := svc.Approve(context.Background(), superAdmin(), "u1")

	assert.NoError(t, err)
}

func TestApprove_UnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(repo, &recordingMailer{})
	_, err := svc.Approve(context.Background(), superAdmin(), "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReject_NeedsReason(t *testing.T) {
	svc := newTestService(new(mockUserRepo), &recordingMailer{})
	_, err := svc.Reject(context.Background(), superAdmin(), "u1", "")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestReject_StoresReasonAndMails(t *testing.T) {
	repo := new(mockUserRepo)
	mail := &recordingMailer{}
	repo.On("GetByID", mock.Anything, "u1").Return(pendingUser("u1"), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.ApprovalStatus == domain.ApprovalRejected && u.RejectionReason == "no business license"
	})).Return(nil)

	svc := newTestService(repo, mail)
	user, err := svc.Reject(context.Background(), superAdmin(), "u1", "no business license")

	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, user.ApprovalStatus)
	assert.Equal(t, []string{"u1@example.com"}, mail.rejections)
}

func TestSuspend_CannotTargetSelf(t *testing.T) {
	svc := newTestService(new(mockUserRepo), &recordingMailer{})
	_, err := svc.Suspend(context.Background(), superAdmin(), "super-1")
	assert.ErrorIs(t, err, ErrSelfAction)
}

func TestSuspend_CannotTargetSuperAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	other := pendingUser("super-2")
	other.Role = domain.RoleSuperAdmin
	other.ApprovalStatus = domain.ApprovalApproved
	repo.On("GetByID", mock.Anything, "super-2").Return(other, nil)

	svc := newTestService(repo, &recordingMailer{})
	_, err := svc.Suspend(context.Background(), superAdmin(), "super-2")

	assert.ErrorIs(t, err, ErrSuperAdminTarget)
}

func TestSuspend_ApprovedAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	target := pendingUser("u1")
	target.ApprovalStatus = domain.ApprovalApproved
	repo.On("GetByID", mock.Anything, "u1").Return(target, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.Status == domain.StatusSuspended
	})).Return(nil)

	svc := newTestService(repo, &recordingMailer{})
	user, err := svc.Suspend(context.Background(), superAdmin(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, user.Status)
}

func TestSuspend_PendingAccountRejected(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(pendingUser("u1"), nil)

	svc := newTestService(repo, &recordingMailer{})
	_, err := svc.Suspend(context.Background(), superAdmin(), "u1")

	assert.ErrorIs(t, err, ErrAccountNotApproved)
}

func TestActivate_OnlySuspended(t *testing.T) {
	repo := new(mockUserRepo)
	target := pendingUser("u1")
	target.ApprovalStatus = domain.ApprovalApproved
	repo.On("GetByID", mock.Anything, "u1").Return(target, nil)

	svc := newTestService(repo, &recordingMailer{})
	_, err := svc.Activate(context.Background(), superAdmin(), "u1")

	assert.ErrorIs(t, err, ErrNotSuspended)
}

func TestActivate_LiftsSuspension(t *testing.T) {
	repo := new(mockUserRepo)
	target := pendingUser("u1")
	target.ApprovalStatus = domain.ApprovalApproved
	target.Status = domain.StatusSuspended
	repo.On("GetByID", mock.Anything, "u1").Return(target, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.Status == domain.StatusActive
	})).Return(nil)

	svc := newTestService(repo, &recordingMailer{})
	user, err := svc.Activate(context.Background(), superAdmin(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, user.Status)
}

func TestStats_SumsCounts(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("CountByApproval", mock.Anything).Return(map[domain.ApprovalStatus]int64{
		domain.ApprovalPending:  3,
		domain.ApprovalApproved: 10,
		domain.ApprovalRejected: 2,
	}, nil)

	svc := newTestService(repo, &recordingMailer{})
	stats, err := svc.Stats(context.Background(), superAdmin())

	require.NoError(t, err)
	assert.Equal(t, int64(15), stats.Total)
	assert.Equal(t, int64(3), stats.Pending)
}

func TestList_RequiresSuperAdmin(t *testing.T) {
	svc := newTestService(new(mockUserRepo), &recordingMailer{})
	_, _, _, _, err := svc.List(context.Background(), plainAdmin(), ListQuery{})
	assert.ErrorIs(t, err, identity.ErrForbidden)
}

func TestList_PassesFilters(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.AdminUserFilters) bool {
		return f.ApprovalStatus == domain.ApprovalPending && f.Limit == 20 && f.Offset == 0
	})).Return([]domain.AdminUser{}, int64(0), nil)

	svc := newTestService(repo, &recordingMailer{})
	_, _, page, perPage, err := svc.List(context.Background(), superAdmin(), ListQuery{ApprovalStatus: "pending"})
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, perPage)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete_MarksDeletedTerminally(t *testing.T) {
	repo := new(mockUserRepo)
	target := pendingUser("u1")
	target.ApprovalStatus = domain.ApprovalApproved
	repo.On("GetByID", mock.Anything, "u1").Return(target, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.Status == domain.StatusDeleted
	})).Return(nil)

	svc := newTestService(repo, &recordingMailer{})
	err := svc.Delete(context.Background(), superAdmin(), "u1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	repo := new(mockUserRepo)
	target := pendingUser("u1")
	target.Status = domain.StatusDeleted
	repo.On("GetByID", mock.Anything, "u1").Return(target, nil)

	svc := newTestService(repo, &recordingMailer{})
	err := svc.Delete(context.Background(), superAdmin(), "u1")

	assert.ErrorIs(t, err, ErrAlreadyDeleted)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_CannotTargetSelfOrSuperAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	other := pendingUser("super-2")
	other.Role = domain.RoleSuperAdmin
	repo.On("GetByID", mock.Anything, "super-2").Return(other, nil)

	svc := newTestService(repo, &recordingMailer{})

	assert.ErrorIs(t, svc.Delete(context.Background(), superAdmin(), "super-1"), ErrSelfAction)
	assert.ErrorIs(t, svc.Delete(context.Background(), superAdmin(), "super-2"), ErrSuperAdminTarget)
}
