package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QAItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Question    string     `gorm:"column:question;type:text;not null" json:"question"`
	Answer      string     `gorm:"column:answer;type:text;not null" json:"answer"`
	Category    *string    `gorm:"column:category;type:varchar(100)" json:"category,omitempty"`
	SortOrder   int        `gorm:"column:sort_order;not null" json:"sort_order"`
	IsPublished bool       `gorm:"column:is_published;not null" json:"is_published"`
	CreatedBy   *uuid.UUID `gorm:"column:created_by;type:uuid" json:"created_by,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QAItem) TableName() string { return "qa_items" }

func (q *QAItem) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
