package user_services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nimaarv/chatspark/internal/domain"
)

// AuthService issues and validates the session tokens handed out after a
// successful phone verification.
type AuthService struct {
	jwtSecretKey string
	tokenTTL     time.Duration
	logger       Logger
}

func NewAuthService(jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		jwtSecretKey: jwtSecretKey,
		tokenTTL:     24 * time.Hour,
		logger:       logger,
	}
}

// IssueToken creates a signed session token for a verified user.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	if user == nil || user.ID == 0 {
		return "", errors.New("user is required")
	}
	if !user.IsVerified {
		return "", errors.New("account not verified")
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "error", err, "user_id", user.ID)
		return "", err
	}
	return signed, nil
}

// ValidateToken checks a session token and returns the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sub, ok := claims["sub"].(float64); ok {
			return uint(sub), nil
		}
	}
	return 0, errors.New("invalid token")
}
