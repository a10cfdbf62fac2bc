package helper

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
)

var ErrUnknownUser = errors.New("user not found")

// RoleResolver answers "what role does this caller have".
type RoleResolver interface {
	ResolveRole(ctx context.Context, s *Session) (string, error)
}

// DBRoleResolver trusts the role claim when present and otherwise looks the
// user up by email.
type DBRoleResolver struct {
	DB *gorm.DB
}

func NewDBRoleResolver(db *gorm.DB) *DBRoleResolver {
	return &DBRoleResolver{DB: db}
}

func (r *DBRoleResolver) ResolveRole(ctx context.Context, s *Session) (string, error) {
	if s == nil {
		return "", ErrUnknownUser
	}
	if constants.IsValidRole(s.Role) {
		return s.Role, nil
	}

	var role string
	err := r.DB.WithContext(ctx).
		Table("users").
		Select("role").
		Where("LOWER(email) = ?", strings.ToLower(s.Email)).
		Limit(1).
		Scan(&role).Error
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", ErrUnknownUser
	}
	return strings.ToLower(role), nil
}

// StaticRoleResolver always answers with Role. Handy when wiring tests.
type StaticRoleResolver struct{ Role string }

func (r StaticRoleResolver) ResolveRole(context.Context, *Session) (string, error) {
	if r.Role == "" {
		return "", ErrUnknownUser
	}
	return r.Role, nil
}
