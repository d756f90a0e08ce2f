package user_services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimaarv/chatspark/internal/domain"
	"github.com/nimaarv/chatspark/internal/repository/user"
	"github.com/nimaarv/chatspark/internal/services"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := u.IsValid(); err != nil {
		return nil, err
	}
	u.ID = r.nextID
	r.nextID++
	copied := *u
	r.users[u.PhoneNumber] = &copied
	return u, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if u, ok := r.users[phone]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	copied := *u
	r.users[u.PhoneNumber] = &copied
	return nil
}

type fakeSMSProvider struct {
	sentTo   []string
	lastCode string
	fail     error
}

func (p *fakeSMSProvider) SendVerificationCode(ctx context.Context, phone, code string) error {
	if p.fail != nil {
		return p.fail
	}
	p.sentTo = append(p.sentTo, phone)
	p.lastCode = code
	return nil
}

func newTestVerificationService() (*VerificationService, *fakeUserRepo, *fakeSMSProvider) {
	repo := newFakeUserRepo()
	provider := &fakeSMSProvider{}
	svc := NewVerificationService(repo, provider, services.NoOpLogger{})
	return svc, repo, provider
}

func TestRequestCodeCreatesAccountAndSends(t *testing.T) {
	svc, repo, provider := newTestVerificationService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))

	account, err := repo.FindByPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.False(t, account.IsVerified)
	assert.NotEmpty(t, account.VerificationCodeHash)
	require.Len(t, provider.sentTo, 1)
	require.Len(t, provider.lastCode, 6)

	// The raw code is never stored, only its hash.
	assert.NotEqual(t, provider.lastCode, account.VerificationCodeHash)
	assert.NoError(t, account.CheckVerificationCode(provider.lastCode))
}

func TestRequestCodeRejectsBadPhone(t *testing.T) {
	svc, _, provider := newTestVerificationService()

	require.Error(t, svc.RequestCode(context.Background(), "not-a-phone", ""))
	assert.Empty(t, provider.sentTo)
}

func TestRequestCodeThrottlesResend(t *testing.T) {
	svc, _, provider := newTestVerificationService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))
	err := svc.RequestCode(ctx, "+15551234567", "+1")
	require.Error(t, err)
	assert.Len(t, provider.sentTo, 1)

	// Past the resend window a new code goes out.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))
	assert.Len(t, provider.sentTo, 2)
}

func TestRequestCodeSurfacesProviderFailure(t *testing.T) {
	svc, _, provider := newTestVerificationService()
	provider.fail = errors.New("gateway down")

	err := svc.RequestCode(context.Background(), "+15551234567", "+1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send SMS")
}

func TestVerifyCodeHappyPath(t *testing.T) {
	svc, repo, provider := newTestVerificationService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))
	account, err := svc.VerifyCode(ctx, "+15551234567", provider.lastCode)
	require.NoError(t, err)
	assert.True(t, account.IsVerified)

	// Code is single-use.
	stored, err := repo.FindByPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Empty(t, stored.VerificationCodeHash)

	_, err = svc.VerifyCode(ctx, "+15551234567", provider.lastCode)
	require.Error(t, err)
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	svc, _, provider := newTestVerificationService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))
	wrong := "000000"
	if wrong == provider.lastCode {
		wrong = "000001"
	}
	_, err := svc.VerifyCode(ctx, "+15551234567", wrong)
	require.Error(t, err)
}

func TestVerifyCodeRejectsExpiredCode(t *testing.T) {
	svc, _, provider := newTestVerificationService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "+15551234567", "+1"))
	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err := svc.VerifyCode(ctx, "+15551234567", provider.lastCode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
