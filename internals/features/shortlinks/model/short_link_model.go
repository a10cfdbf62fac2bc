package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShortLink struct {
	ShortLinkID uuid.UUID `gorm:"column:short_link_id;type:uuid;primaryKey" json:"short_link_id"`

	ShortCode string  `gorm:"column:short_code;type:varchar(32);not null;uniqueIndex:uq_short_links_code" json:"short_code"`
	TargetURL string  `gorm:"column:target_url;type:text;not null" json:"target_url"`
	Title     *string `gorm:"column:title;type:varchar(255)" json:"title,omitempty"`

	// clicks only moves through the redirect path
	Clicks    int64      `gorm:"column:clicks;not null;default:0" json:"clicks"`
	Active    bool       `gorm:"column:active;not null" json:"active"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ShortLink) TableName() string {
	return "short_links"
}

func (s *ShortLink) BeforeCreate(*gorm.DB) error {
	if s.ShortLinkID == uuid.Nil {
		s.ShortLinkID = uuid.New()
	}
	return nil
}

// Live reports whether a redirect at now should reach the target.
func (s *ShortLink) Live(now time.Time) bool {
	return s.Active && (s.ExpiresAt == nil || s.ExpiresAt.After(now))
}
