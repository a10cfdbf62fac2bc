package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mwit_alumni_backend/internals/features/alumni/profiles/model"
)

// UpsertProfileRequest is read from JSON or multipart form. The email always
// comes from the session.
type UpsertProfileRequest struct {
	FirstName      string  `json:"first_name" validate:"required,max=100"`
	LastName       string  `json:"last_name" validate:"required,max=100"`
	Nickname       *string `json:"nickname" validate:"omitempty,max=50"`
	Generation     string  `json:"generation" validate:"required,max=50"`
	GraduationYear *int    `json:"graduation_year" validate:"omitempty,min=1900,max=3000"`
	Occupation     *string `json:"occupation" validate:"omitempty,max=150"`
	Workplace      *string `json:"workplace" validate:"omitempty,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	LineID         *string `json:"line_id" validate:"omitempty,max=100"`
	Bio            *string `json:"bio" validate:"omitempty,max=2000"`
	IsPublic       *bool   `json:"is_public"`
}

func formPtr(c *fiber.Ctx, key string) *string {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

// BindUpsert parses the body; multipart is read field by field.
func BindUpsert(c *fiber.Ctx) (*UpsertProfileRequest, error) {
	var r UpsertProfileRequest
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&r); err != nil {
			return nil, err
		}
	} else {
		r.FirstName = c.FormValue("first_name")
		r.LastName = c.FormValue("last_name")
		r.Generation = c.FormValue("generation")
		r.Nickname = formPtr(c, "nickname")
		r.Occupation = formPtr(c, "occupation")
		r.Workplace = formPtr(c, "workplace")
		r.Phone = formPtr(c, "phone")
		r.LineID = formPtr(c, "line_id")
		r.Bio = formPtr(c, "bio")
		if v := formPtr(c, "graduation_year"); v != nil {
			n, err := strconv.Atoi(*v)
			if err != nil {
				return nil, err
			}
			r.GraduationYear = &n
		}
		if v := formPtr(c, "is_public"); v != nil {
			b, err := strconv.ParseBool(*v)
			if err != nil {
				return nil, err
			}
			r.IsPublic = &b
		}
	}
	r.normalize()
	return &r, nil
}

func trim(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *UpsertProfileRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Generation = strings.TrimSpace(r.Generation)
	r.Nickname = trim(r.Nickname)
	r.Occupation = trim(r.Occupation)
	r.Workplace = trim(r.Workplace)
	r.Phone = trim(r.Phone)
	r.LineID = trim(r.LineID)
	r.Bio = trim(r.Bio)
}

func (r *UpsertProfileRequest) ApplyTo(p *model.AlumniProfile) {
	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.Generation = r.Generation
	p.Nickname = r.Nickname
	p.GraduationYear = r.GraduationYear
	p.Occupation = r.Occupation
	p.Workplace = r.Workplace
	p.Phone = r.Phone
	p.LineID = r.LineID
	p.Bio = r.Bio
	if r.IsPublic != nil {
		p.IsPublic = *r.IsPublic
	} else if p.CreatedAt.IsZero() {
		p.IsPublic = true
	}
}

// PublicProfile is the directory view. Contact fields are left out.
type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Nickname       *string   `json:"nickname,omitempty"`
	Generation     string    `json:"generation"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	Occupation     *string   `json:"occupation,omitempty"`
	Workplace      *string   `json:"workplace,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToPublic(list []model.AlumniProfile) []PublicProfile {
	out := make([]PublicProfile, 0, len(list))
	for _, p := range list {
		out = append(out, PublicProfile{
			ID:             p.ID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Nickname:       p.Nickname,
			Generation:     p.Generation,
			GraduationYear: p.GraduationYear,
			Occupation:     p.Occupation,
			Workplace:      p.Workplace,
			Bio:            p.Bio,
			ImageURL:       p.ImageURL,
			UpdatedAt:      p.UpdatedAt,
		})
	}
	return out
}
