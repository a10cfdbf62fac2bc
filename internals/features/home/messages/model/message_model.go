package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a contact-form submission.
type Message struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Email     string     `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone     *string    `gorm:"column:phone;type:varchar(30)" json:"phone,omitempty"`
	Subject   string     `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Body      string     `gorm:"column:body;type:text;not null" json:"body"`
	IsRead    bool       `gorm:"column:is_read;not null;index:idx_messages_read_created,priority:1" json:"is_read"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	AdminNote *string    `gorm:"column:admin_note;type:text" json:"admin_note,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_messages_read_created,priority:2" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
