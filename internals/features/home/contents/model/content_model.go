package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentBlock is a keyed piece of landing-page content (hero text, contact
// info, bank account...). Data carries block-specific JSON.
type ContentBlock struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"column:key;type:varchar(100);not null;uniqueIndex" json:"key"`
	Title     string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body      string         `gorm:"column:body;type:text;not null" json:"body"`
	ImageURL  *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	Data      datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
	SortOrder int            `gorm:"column:sort_order;not null" json:"sort_order"`
	IsActive  bool           `gorm:"column:is_active;not null" json:"is_active"`
	UpdatedBy *uuid.UUID     `gorm:"column:updated_by;type:uuid" json:"updated_by,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentBlock) TableName() string { return "content_blocks" }

func (b *ContentBlock) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
