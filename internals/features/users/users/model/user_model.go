package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
)

type UserModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email       string     `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"column:name;size:150;not null" json:"name"`
	Image       *string    `gorm:"column:image;type:text" json:"image,omitempty"`
	GoogleID    *string    `gorm:"column:google_id;size:255;uniqueIndex" json:"-"`
	Role        string     `gorm:"column:role;type:varchar(20);not null" json:"role"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	return nil
}

func (u *UserModel) IsAdmin() bool { return u.Role == constants.RoleAdmin }
