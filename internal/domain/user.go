package domain

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account identified by phone number. There is no password; the
// only credential is a short-lived SMS verification code.
type User struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	PhoneNumber string `json:"phone_number" gorm:"uniqueIndex;not null;size:20"`
	CountryCode string `json:"country_code" gorm:"size:8"`
	IsVerified  bool   `json:"is_verified" gorm:"default:false"`

	// Verification code state. The code itself is stored only as a bcrypt
	// hash so a leaked database does not leak live codes.
	VerificationCodeHash      string     `json:"-"`
	VerificationCodeSentAt    *time.Time `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetVerificationCode hashes and stores a freshly generated code.
func (u *User) SetVerificationCode(code string, now time.Time, ttl time.Duration) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	expires := now.Add(ttl)
	u.VerificationCodeHash = string(hashed)
	u.VerificationCodeSentAt = &now
	u.VerificationCodeExpiresAt = &expires
	return nil
}

// CheckVerificationCode compares a submitted code against the stored hash.
func (u *User) CheckVerificationCode(code string) error {
	if u.VerificationCodeHash == "" {
		return errors.New("no verification code issued")
	}
	return bcrypt.CompareHashAndPassword([]byte(u.VerificationCodeHash), []byte(code))
}

// ClearVerificationCode removes code state after a successful verification.
func (u *User) ClearVerificationCode() {
	u.VerificationCodeHash = ""
	u.VerificationCodeSentAt = nil
	u.VerificationCodeExpiresAt = nil
}

func (u *User) IsValid() error {
	if u.PhoneNumber == "" {
		return errors.New("phone number is required")
	}
	return nil
}
