package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("jwt secret is empty")
	ErrInvalidToken  = errors.New("invalid session token")
)

// Session is what a signed session token carries.
// Role may be empty for tokens issued before roles were embedded.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssueSession signs an HS256 token for s. ExpiresAt is filled from ttl.
func IssueSession(s *Session, secret string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	s.IssuedAt = now
	s.ExpiresAt = now.Add(ttl)

	claims := jwt.MapClaims{
		"sub":     s.UserID.String(),
		"user_id": s.UserID.String(),
		"email":   s.Email,
		"name":    s.Name,
		"iat":     now.Unix(),
		"exp":     s.ExpiresAt.Unix(),
	}
	if s.Role != "" {
		claims["role"] = s.Role
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSession verifies signature and expiry.
func ParseSession(raw, secret string) (*Session, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	idStr := claimString(claims, "user_id")
	if idStr == "" {
		idStr = claimString(claims, "sub")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrInvalidToken)
	}

	s := &Session{
		UserID: id,
		Email:  strings.ToLower(claimString(claims, "email")),
		Name:   claimString(claims, "name"),
		Role:   strings.ToLower(claimString(claims, "role")),
	}
	if iat, ok := claims["iat"].(float64); ok {
		s.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		s.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return s, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

const LocSession = "session"

// SessionFromCtx returns the session stored by the auth middleware, or nil.
func SessionFromCtx(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(LocSession).(*Session); ok {
		return s
	}
	return nil
}
