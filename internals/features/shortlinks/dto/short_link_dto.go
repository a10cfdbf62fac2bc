package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"mwit_alumni_backend/internals/features/shortlinks/model"
)

type CreateShortLinkRequest struct {
	ShortCode *string    `json:"short_code" validate:"omitempty,shortcode"`
	TargetURL string     `json:"target_url" validate:"required,url,max=2048"`
	Title     *string    `json:"title" validate:"omitempty,max=255"`
	Active    *bool      `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *CreateShortLinkRequest) Normalize() {
	r.TargetURL = strings.TrimSpace(r.TargetURL)
	if r.ShortCode != nil {
		v := strings.TrimSpace(*r.ShortCode)
		if v == "" {
			r.ShortCode = nil
		} else {
			r.ShortCode = &v
		}
	}
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
}

func (r *CreateShortLinkRequest) ToModel(code string, createdBy *uuid.UUID) *model.ShortLink {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	var exp *time.Time
	if r.ExpiresAt != nil {
		t := r.ExpiresAt.UTC()
		exp = &t
	}
	return &model.ShortLink{
		ShortCode: code,
		TargetURL: r.TargetURL,
		Title:     r.Title,
		Active:    active,
		ExpiresAt: exp,
		CreatedBy: createdBy,
	}
}

// UpdateShortLinkRequest is a partial update. ClearExpiry removes expires_at.
type UpdateShortLinkRequest struct {
	ShortCode   *string    `json:"short_code" validate:"omitempty,shortcode"`
	TargetURL   *string    `json:"target_url" validate:"omitempty,url,max=2048"`
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Active      *bool      `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	ClearExpiry bool       `json:"clear_expiry"`
}

// Changes returns the column map for gorm Updates. clicks is never included.
func (r *UpdateShortLinkRequest) Changes() map[string]any {
	m := map[string]any{}
	if r.ShortCode != nil {
		m["short_code"] = strings.TrimSpace(*r.ShortCode)
	}
	if r.TargetURL != nil {
		m["target_url"] = strings.TrimSpace(*r.TargetURL)
	}
	if r.Title != nil {
		m["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Active != nil {
		m["active"] = *r.Active
	}
	switch {
	case r.ClearExpiry:
		m["expires_at"] = nil
	case r.ExpiresAt != nil:
		m["expires_at"] = r.ExpiresAt.UTC()
	}
	return m
}
