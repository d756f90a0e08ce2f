package user_services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/nimaarv/chatspark/internal/domain"
	"github.com/nimaarv/chatspark/internal/repository/user"
	"github.com/nimaarv/chatspark/internal/services/sms"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

const (
	codeTTL        = 10 * time.Minute
	resendInterval = time.Minute
)

// VerificationService runs the phone OTP workflow: a code is generated and
// delivered on request, then checked on verify. Codes are stored hashed and
// expire after ten minutes.
type VerificationService struct {
	userRepo user.UserRepository
	provider sms.Provider
	logger   Logger
	now      func() time.Time
}

func NewVerificationService(userRepo user.UserRepository, provider sms.Provider, logger Logger) *VerificationService {
	return &VerificationService{
		userRepo: userRepo,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestCode finds or creates the account for a phone number and sends it a
// fresh verification code. Requests inside the resend window are rejected.
func (s *VerificationService) RequestCode(ctx context.Context, phone, countryCode string) error {
	if !phonePattern.MatchString(phone) {
		return errors.New("invalid phone number")
	}

	account, err := s.userRepo.FindByPhone(ctx, phone)
	if errors.Is(err, user.ErrUserNotFound) {
		account, err = s.userRepo.Create(ctx, &domain.User{
			PhoneNumber: phone,
			CountryCode: countryCode,
		})
	}
	if err != nil {
		s.logger.Error("failed to resolve account for verification", "error", err)
		return fmt.Errorf("failed to resolve account: %w", err)
	}

	if account.VerificationCodeSentAt != nil && s.now().Sub(*account.VerificationCodeSentAt) < resendInterval {
		s.logger.Warn("verification code rate limited", "user_id", account.ID)
		return errors.New("please wait before requesting another code")
	}

	code := s.generateCode()
	if err := account.SetVerificationCode(code, s.now(), codeTTL); err != nil {
		s.logger.Error("failed to hash verification code", "error", err, "user_id", account.ID)
		return errors.New("internal error")
	}
	if err := s.userRepo.Update(ctx, account); err != nil {
		s.logger.Error("failed to save verification code", "error", err, "user_id", account.ID)
		return fmt.Errorf("failed to save verification code: %w", err)
	}

	if err := s.provider.SendVerificationCode(ctx, phone, code); err != nil {
		s.logger.Error("SMS sending failed", "error", err, "user_id", account.ID)
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	s.logger.Info("verification code sent", "user_id", account.ID)
	return nil
}

// VerifyCode checks the submitted code, marks the account verified and
// returns it. The stored code is single-use.
func (s *VerificationService) VerifyCode(ctx context.Context, phone, code string) (*domain.User, error) {
	if code == "" || len(code) != 6 {
		return nil, errors.New("invalid input for verification")
	}

	account, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		s.logger.Warn("verification attempt for unknown phone", "error", err)
		return nil, errors.New("invalid code or phone number")
	}

	if account.VerificationCodeExpiresAt == nil || s.now().After(*account.VerificationCodeExpiresAt) {
		return nil, errors.New("verification code has expired")
	}
	if err := account.CheckVerificationCode(code); err != nil {
		s.logger.Warn("invalid verification code provided", "user_id", account.ID)
		return nil, errors.New("invalid verification code")
	}

	account.IsVerified = true
	account.ClearVerificationCode()
	if err := s.userRepo.Update(ctx, account); err != nil {
		s.logger.Error("failed to save verification status", "error", err, "user_id", account.ID)
		return nil, fmt.Errorf("failed to save verification status: %w", err)
	}

	s.logger.Info("user verified", "user_id", account.ID)
	return account, nil
}

// generateCode creates a 6-digit verification code.
func (s *VerificationService) generateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
