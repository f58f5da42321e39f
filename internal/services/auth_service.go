package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Session token windows. Login and signup hand out the short window; refresh
// hands out the day-scale one. A token whose exp lies within RefreshGrace of
// now may still be exchanged for a fresh one.
const (
	SessionTTL   = 15 * time.Minute
	RefreshTTL   = 24 * time.Hour
	RefreshGrace = 7 * 24 * time.Hour

	signupHashCost = 10
	resetHashCost  = 12
)

type Claims struct {
	AccountID int `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(plain string) (string, error)
	HashPasswordStrong(plain string) (string, error)
	CheckPassword(hash, plain string) error

	IssueToken(accountID int, ttl time.Duration) (string, error)
	Authenticate(token string) (int, error)
	Refresh(token string) (int, error)
}

type authService struct {
	secret []byte
}

func NewAuthService(secret string) AuthService {
	return &authService{secret: []byte(secret)}
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), signupHashCost)
	return string(h), err
}

// HashPasswordStrong is used on reset, where the original flow pays for a
// higher cost factor.
func (s *authService) HashPasswordStrong(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), resetHashCost)
	return string(h), err
}

func (s *authService) CheckPassword(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

func (s *authService) IssueToken(accountID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) keyfunc(token *jwt.Token) (interface{}, error) {
	// HMAC only; anything else is treated as a forged token
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}

// Authenticate accepts only live tokens: valid signature and unexpired.
func (s *authService) Authenticate(tokenStr string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyfunc)
	if err != nil || !token.Valid {
		return 0, ErrTokenInvalid
	}
	return claims.AccountID, nil
}

// Refresh additionally accepts tokens expired by no more than RefreshGrace.
// The signature must verify either way; jwt/v5 checks it before the expiry
// claim, so an ErrTokenExpired result still means the payload is trusted.
func (s *authService) Refresh(tokenStr string) (int, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, s.keyfunc)
	if err == nil {
		return claims.AccountID, nil
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		return 0, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || time.Since(claims.ExpiresAt.Time) > RefreshGrace {
		return 0, ErrTokenExpired
	}
	return claims.AccountID, nil
}
