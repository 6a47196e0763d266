// Package auth issues and verifies back-office tokens and hashes admin
// passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"menu-api/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownRole  = errors.New("unknown role")
)

// Claims is the token payload. Role is checked during parsing, so a token
// carrying any other role string never verifies.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Validate is called by the jwt parser after the registered claims pass.
func (c Claims) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidToken)
	}
	if !models.ValidRole(c.Role) {
		return fmt.Errorf("%w %q", ErrUnknownRole, c.Role)
	}
	return nil
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for username with role.
func (s *TokenService) Issue(username, role string) (string, error) {
	if !models.ValidRole(role) {
		return "", fmt.Errorf("%w %q", ErrUnknownRole, role)
	}
	now := s.now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and returns its claims. Expired, tampered and
// non-HMAC tokens are rejected.
func (s *TokenService) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
