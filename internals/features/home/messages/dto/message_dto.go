package dto

import (
	"strings"

	"mwit_alumni_backend/internals/features/home/messages/model"
)

type CreateMessageRequest struct {
	Name    string  `json:"name" form:"name" validate:"required,max=150"`
	Email   string  `json:"email" form:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone" form:"phone" validate:"omitempty,max=30"`
	Subject string  `json:"subject" form:"subject" validate:"max=255"`
	Body    string  `json:"body" form:"body" validate:"required,max=5000"`
}

func (r *CreateMessageRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = strings.TrimSpace(r.Subject)
	r.Body = strings.TrimSpace(r.Body)
	if r.Phone != nil {
		if v := strings.TrimSpace(*r.Phone); v != "" {
			r.Phone = &v
		} else {
			r.Phone = nil
		}
	}
}

func (r *CreateMessageRequest) ToModel() *model.Message {
	return &model.Message{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Body:    r.Body,
	}
}

type MarkReadRequest struct {
	IsRead *bool `json:"is_read"`
}

type NoteRequest struct {
	AdminNote string `json:"admin_note" validate:"max=5000"`
}
