package dto

import (
	"strings"
)

type CreateBlogPostRequest struct {
	Title         string  `json:"blog_post_title" form:"blog_post_title" validate:"required,max=255"`
	Slug          *string `json:"blog_post_slug" form:"blog_post_slug" validate:"omitempty,max=160"`
	Excerpt       *string `json:"blog_post_excerpt" form:"blog_post_excerpt"`
	Content       string  `json:"blog_post_content" form:"blog_post_content" validate:"required"`
	CoverImageURL *string `json:"blog_post_cover_image_url" form:"blog_post_cover_image_url" validate:"omitempty,url"`
	Status        string  `json:"blog_post_status" form:"blog_post_status" validate:"omitempty,oneof=draft published archived"`
}

func (r *CreateBlogPostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Slug = trimOrNil(r.Slug)
	r.Excerpt = trimOrNil(r.Excerpt)
	r.CoverImageURL = trimOrNil(r.CoverImageURL)
}

type UpdateBlogPostRequest struct {
	Title         *string `json:"blog_post_title" form:"blog_post_title" validate:"omitempty,min=1,max=255"`
	Slug          *string `json:"blog_post_slug" form:"blog_post_slug" validate:"omitempty,max=160"`
	Excerpt       *string `json:"blog_post_excerpt" form:"blog_post_excerpt"`
	Content       *string `json:"blog_post_content" form:"blog_post_content" validate:"omitempty,min=1"`
	CoverImageURL *string `json:"blog_post_cover_image_url" form:"blog_post_cover_image_url" validate:"omitempty,url"`
	Status        *string `json:"blog_post_status" form:"blog_post_status" validate:"omitempty,oneof=draft published archived"`
	RemoveCover   bool    `json:"remove_cover" form:"remove_cover"`
}

func (r *UpdateBlogPostRequest) Normalize() {
	r.Title = trimOrNil(r.Title)
	r.Slug = trimOrNil(r.Slug)
	r.CoverImageURL = trimOrNil(r.CoverImageURL)
	if r.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
}

type BlogImageInput struct {
	ImageURL string  `json:"blog_image_url" validate:"required,url"`
	Caption  *string `json:"blog_image_caption" validate:"omitempty,max=500"`
}

// ReplaceImagesRequest sets the full ordered image list of a post.
type ReplaceImagesRequest struct {
	Images []BlogImageInput `json:"images" validate:"max=50,dive"`
}

func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
