package dto

import (
	"strings"

	"github.com/google/uuid"

	"mwit_alumni_backend/internals/features/home/qa/model"
)

type CreateQARequest struct {
	Question    string  `json:"question" validate:"required,max=2000"`
	Answer      string  `json:"answer" validate:"max=10000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	SortOrder   int     `json:"sort_order" validate:"min=0"`
	IsPublished *bool   `json:"is_published"`
}

func (r *CreateQARequest) ToModel(createdBy *uuid.UUID) *model.QAItem {
	item := &model.QAItem{
		Question:    strings.TrimSpace(r.Question),
		Answer:      strings.TrimSpace(r.Answer),
		SortOrder:   r.SortOrder,
		IsPublished: r.IsPublished != nil && *r.IsPublished,
		CreatedBy:   createdBy,
	}
	if r.Category != nil {
		if c := strings.TrimSpace(*r.Category); c != "" {
			item.Category = &c
		}
	}
	return item
}

type UpdateQARequest struct {
	Question    *string `json:"question" validate:"omitempty,min=1,max=2000"`
	Answer      *string `json:"answer" validate:"omitempty,max=10000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,min=0"`
	IsPublished *bool   `json:"is_published"`
}

func (r *UpdateQARequest) Changes() map[string]any {
	m := map[string]any{}
	if r.Question != nil {
		m["question"] = strings.TrimSpace(*r.Question)
	}
	if r.Answer != nil {
		m["answer"] = strings.TrimSpace(*r.Answer)
	}
	if r.Category != nil {
		if c := strings.TrimSpace(*r.Category); c != "" {
			m["category"] = c
		} else {
			m["category"] = nil
		}
	}
	if r.SortOrder != nil {
		m["sort_order"] = *r.SortOrder
	}
	if r.IsPublished != nil {
		m["is_published"] = *r.IsPublished
	}
	return m
}
