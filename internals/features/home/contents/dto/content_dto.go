package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"mwit_alumni_backend/internals/features/home/contents/model"
)

type CreateContentRequest struct {
	Key       string         `json:"key" validate:"required,max=100"`
	Title     string         `json:"title" validate:"max=255"`
	Body      string         `json:"body"`
	ImageURL  *string        `json:"image_url" validate:"omitempty,url"`
	Data      datatypes.JSON `json:"data"`
	SortOrder int            `json:"sort_order" validate:"min=0"`
	IsActive  *bool          `json:"is_active"`
}

func (r *CreateContentRequest) ToModel(by *uuid.UUID) *model.ContentBlock {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.ContentBlock{
		Key:       strings.ToLower(strings.TrimSpace(r.Key)),
		Title:     strings.TrimSpace(r.Title),
		Body:      r.Body,
		ImageURL:  r.ImageURL,
		Data:      r.Data,
		SortOrder: r.SortOrder,
		IsActive:  active,
		UpdatedBy: by,
	}
}

type UpdateContentRequest struct {
	Key       *string         `json:"key" validate:"omitempty,min=1,max=100"`
	Title     *string         `json:"title" validate:"omitempty,max=255"`
	Body      *string         `json:"body"`
	ImageURL  *string         `json:"image_url" validate:"omitempty,url"`
	Data      *datatypes.JSON `json:"data"`
	SortOrder *int            `json:"sort_order" validate:"omitempty,min=0"`
	IsActive  *bool           `json:"is_active"`
}

func (r *UpdateContentRequest) Changes(by *uuid.UUID) map[string]any {
	m := map[string]any{"updated_by": by}
	if r.Key != nil {
		m["key"] = strings.ToLower(strings.TrimSpace(*r.Key))
	}
	if r.Title != nil {
		m["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Body != nil {
		m["body"] = *r.Body
	}
	if r.ImageURL != nil {
		if v := strings.TrimSpace(*r.ImageURL); v != "" {
			m["image_url"] = v
		} else {
			m["image_url"] = nil
		}
	}
	if r.Data != nil {
		m["data"] = *r.Data
	}
	if r.SortOrder != nil {
		m["sort_order"] = *r.SortOrder
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}
