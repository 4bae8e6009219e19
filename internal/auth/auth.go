package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Claims is the JWT payload for an authenticated session.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("Invalid email or password", internal.ErrCodeInvalidCredentials)
	ErrUserInactive       = internal.NewUnauthorizedError("User is not active", internal.ErrCodeUserInactive)
	ErrInvalidToken       = internal.NewUnauthorizedError("Invalid or missing token", internal.ErrCodeInvalidToken)
	ErrTokenExpired       = internal.NewUnauthorizedError("Token has expired, please login again", internal.ErrCodeTokenExpired)
)

// TokenGenerator issues and validates HMAC-signed access tokens.
type TokenGenerator struct {
	secret   []byte
	duration time.Duration
}

func NewTokenGenerator(secret string, duration time.Duration) *TokenGenerator {
	if duration == 0 {
		duration = 24 * time.Hour
	}
	return &TokenGenerator{secret: []byte(secret), duration: duration}
}

func (g *TokenGenerator) Generate(u *user.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(g.duration)
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

func (g *TokenGenerator) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken.WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
