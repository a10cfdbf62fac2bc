package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlumniProfile struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Email          string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	FirstName      string     `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName       string     `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Nickname       *string    `gorm:"column:nickname;type:varchar(50)" json:"nickname,omitempty"`
	Generation     string     `gorm:"column:generation;type:varchar(50);not null;index" json:"generation"`
	GraduationYear *int       `gorm:"column:graduation_year" json:"graduation_year,omitempty"`
	Occupation     *string    `gorm:"column:occupation;type:varchar(150)" json:"occupation,omitempty"`
	Workplace      *string    `gorm:"column:workplace;type:varchar(255)" json:"workplace,omitempty"`
	Phone          *string    `gorm:"column:phone;type:varchar(30)" json:"phone,omitempty"`
	LineID         *string    `gorm:"column:line_id;type:varchar(100)" json:"line_id,omitempty"`
	Bio            *string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	ImageURL       *string    `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	IsPublic       bool       `gorm:"column:is_public;not null" json:"is_public"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AlumniProfile) TableName() string { return "alumni_profiles" }

func (p *AlumniProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
