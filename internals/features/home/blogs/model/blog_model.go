package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
)

type BlogPost struct {
	BlogPostID            uuid.UUID  `gorm:"column:blog_post_id;type:uuid;primaryKey" json:"blog_post_id"`
	BlogPostTitle         string     `gorm:"column:blog_post_title;type:varchar(255);not null" json:"blog_post_title"`
	BlogPostSlug          string     `gorm:"column:blog_post_slug;type:varchar(160);not null;uniqueIndex" json:"blog_post_slug"`
	BlogPostExcerpt       *string    `gorm:"column:blog_post_excerpt;type:text" json:"blog_post_excerpt,omitempty"`
	BlogPostContent       string     `gorm:"column:blog_post_content;type:text;not null" json:"blog_post_content"`
	BlogPostCoverImageURL *string    `gorm:"column:blog_post_cover_image_url;type:text" json:"blog_post_cover_image_url,omitempty"`
	BlogPostStatus        string     `gorm:"column:blog_post_status;type:varchar(20);not null" json:"blog_post_status"`
	BlogPostPublishedAt   *time.Time `gorm:"column:blog_post_published_at" json:"blog_post_published_at,omitempty"`
	BlogPostAuthorID      *uuid.UUID `gorm:"column:blog_post_author_id;type:uuid" json:"blog_post_author_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Images []BlogImage `gorm:"foreignKey:BlogImagePostID;references:BlogPostID;constraint:OnDelete:CASCADE" json:"images"`
}

func (BlogPost) TableName() string { return "blog_posts" }

func (p *BlogPost) BeforeCreate(*gorm.DB) error {
	if p.BlogPostID == uuid.Nil {
		p.BlogPostID = uuid.New()
	}
	if p.BlogPostStatus == "" {
		p.BlogPostStatus = constants.BlogDraft
	}
	return nil
}

func (p *BlogPost) IsPublished() bool {
	return p.BlogPostStatus == constants.BlogPublished
}

type BlogImage struct {
	BlogImageID        uuid.UUID `gorm:"column:blog_image_id;type:uuid;primaryKey" json:"blog_image_id"`
	BlogImagePostID    uuid.UUID `gorm:"column:blog_image_post_id;type:uuid;not null;index" json:"blog_image_post_id"`
	BlogImageURL       string    `gorm:"column:blog_image_url;type:text;not null" json:"blog_image_url"`
	BlogImageCaption   *string   `gorm:"column:blog_image_caption;type:text" json:"blog_image_caption,omitempty"`
	BlogImageSortOrder int       `gorm:"column:blog_image_sort_order;not null" json:"blog_image_sort_order"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BlogImage) TableName() string { return "blog_images" }

func (i *BlogImage) BeforeCreate(*gorm.DB) error {
	if i.BlogImageID == uuid.Nil {
		i.BlogImageID = uuid.New()
	}
	return nil
}

func IsValidBlogStatus(s string) bool {
	switch s {
	case constants.BlogDraft, constants.BlogPublished, constants.BlogArchived:
		return true
	}
	return false
}
