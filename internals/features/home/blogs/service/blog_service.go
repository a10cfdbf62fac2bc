package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/home/blogs/model"
	helper "mwit_alumni_backend/internals/helpers"
)

const slugFallback = "post"

// UniqueSlug derives a free slug from base. excludeID skips the post being edited.
func UniqueSlug(ctx context.Context, db *gorm.DB, base string, excludeID *uuid.UUID) (string, error) {
	opts := helper.SlugOptions{
		Table:       model.BlogPost{}.TableName(),
		SlugColumn:  "blog_post_slug",
		MaxLen:      helper.DefaultSlugMaxLen,
		DefaultBase: slugFallback,
	}
	if excludeID != nil {
		opts.ExcludeColumn = "blog_post_id"
		opts.ExcludeID = *excludeID
	}
	return helper.GenerateUniqueSlug(ctx, db, opts, base)
}

// SetStatus changes the status; published_at is stamped on the first publish only.
func SetStatus(p *model.BlogPost, status string, now time.Time) {
	p.BlogPostStatus = status
	if status == constants.BlogPublished && p.BlogPostPublishedAt == nil {
		t := now.UTC()
		p.BlogPostPublishedAt = &t
	}
}

// ReplaceImages rewrites the post's images in the given order and returns the
// URLs that are no longer referenced.
func ReplaceImages(ctx context.Context, tx *gorm.DB, postID uuid.UUID, images []model.BlogImage) ([]string, error) {
	var old []model.BlogImage
	if err := tx.WithContext(ctx).Where("blog_image_post_id = ?", postID).Find(&old).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("blog_image_post_id = ?", postID).Delete(&model.BlogImage{}).Error; err != nil {
		return nil, err
	}

	keep := make(map[string]struct{}, len(images))
	for i := range images {
		images[i].BlogImageID = uuid.Nil
		images[i].BlogImagePostID = postID
		images[i].BlogImageSortOrder = i
		keep[images[i].BlogImageURL] = struct{}{}
	}
	if len(images) > 0 {
		if err := tx.WithContext(ctx).Create(&images).Error; err != nil {
			return nil, err
		}
	}

	var dropped []string
	for _, img := range old {
		if _, ok := keep[img.BlogImageURL]; !ok {
			dropped = append(dropped, img.BlogImageURL)
		}
	}
	return dropped, nil
}
