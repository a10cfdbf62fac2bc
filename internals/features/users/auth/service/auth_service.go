package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/users/users/model"
	helper "mwit_alumni_backend/internals/helpers"
)

var (
	ErrInvalidIDToken   = errors.New("invalid google id token")
	ErrDomainNotAllowed = errors.New("email domain not allowed")
	ErrIdentityConflict = errors.New("google account conflicts with another user")
)

type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// IdentityVerifier checks a Google ID token and returns who it belongs to.
type IdentityVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

type GoogleVerifier struct {
	ClientID string
}

func (g GoogleVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	return &GoogleIdentity{
		Sub:   claimSet.Sub,
		Email: strings.ToLower(strings.TrimSpace(claimSet.Email)),
		Name:  strings.TrimSpace(claimSet.Name),
	}, nil
}

// EmailDomainAllowed matches the part after "@" exactly (no subdomains).
func EmailDomainAllowed(email string, domains []string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	return slices.Contains(domains, domain)
}

type AuthService struct {
	DB             *gorm.DB
	AllowedDomains []string
	AdminEmails    []string
}

// maxUpsertAttempts bounds the lookup/create cycle when a concurrent first
// login wins the insert.
const maxUpsertAttempts = 2

// UpsertUser creates the user on first login and refreshes name, image,
// google_id and last_login_at afterwards. The stored role is never touched here;
// emails listed in AdminEmails start out as admin.
//
// A row is matched by email first, then by google_id; a Google account whose
// email changed keeps its row and takes the new email.
func (s *AuthService) UpsertUser(ctx context.Context, id *GoogleIdentity, image *string) (*model.UserModel, error) {
	if !EmailDomainAllowed(id.Email, s.AllowedDomains) {
		return nil, ErrDomainNotAllowed
	}
	for attempt := 1; ; attempt++ {
		user, err := s.upsertOnce(ctx, id, image)
		if err == nil {
			return user, nil
		}
		if !helper.IsUniqueViolation(err) {
			return nil, err
		}
		if attempt >= maxUpsertAttempts {
			slog.WarnContext(ctx, "login upsert conflict",
				"email", id.Email, "google_id", id.Sub, "err", err)
			return nil, ErrIdentityConflict
		}
	}
}

func (s *AuthService) findUser(ctx context.Context, id *GoogleIdentity) (*model.UserModel, error) {
	var user model.UserModel
	err := s.DB.WithContext(ctx).Where("email = ?", id.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) || id.Sub == "" {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("google_id = ?", id.Sub).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) upsertOnce(ctx context.Context, id *GoogleIdentity, image *string) (*model.UserModel, error) {
	now := time.Now().UTC()
	name := id.Name
	if name == "" {
		name = id.Email[:strings.IndexByte(id.Email, '@')]
	}

	user, err := s.findUser(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.UserModel{
			Email:       id.Email,
			Name:        name,
			Image:       image,
			Role:        constants.RoleUser,
			LastLoginAt: &now,
		}
		if id.Sub != "" {
			sub := id.Sub
			user.GoogleID = &sub
		}
		if slices.Contains(s.AdminEmails, id.Email) {
			user.Role = constants.RoleAdmin
		}
		if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]any{
		"name":          name,
		"last_login_at": now,
	}
	if user.Email != id.Email {
		slog.InfoContext(ctx, "google account email changed",
			"user_id", user.ID, "from", user.Email, "to", id.Email)
		updates["email"] = id.Email
	}
	if image != nil && strings.TrimSpace(*image) != "" {
		updates["image"] = *image
	}
	if id.Sub != "" {
		updates["google_id"] = id.Sub
	}
	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}
