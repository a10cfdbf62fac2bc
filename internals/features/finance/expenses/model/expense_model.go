package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Expense struct {
	ExpenseID uuid.UUID `gorm:"column:expense_id;type:uuid;primaryKey" json:"expense_id"`

	ExpenseTitle       string          `gorm:"column:expense_title;type:varchar(255);not null" json:"expense_title"`
	ExpenseDescription *string         `gorm:"column:expense_description;type:text" json:"expense_description,omitempty"`
	ExpenseAmount      decimal.Decimal `gorm:"column:expense_amount;type:numeric(14,2);not null" json:"expense_amount"`
	ExpenseType        string          `gorm:"column:expense_type;type:varchar(10);not null" json:"expense_type"`
	ExpenseCategory    string          `gorm:"column:expense_category;type:varchar(100);not null" json:"expense_category"`

	// Buddhist-era year, e.g. "2567"
	ExpenseAcademicYear string         `gorm:"column:expense_academic_year;type:varchar(10);not null;index" json:"expense_academic_year"`
	ExpenseDate         datatypes.Date `gorm:"column:expense_date;type:date;not null" json:"expense_date"`
	ExpenseReceiptURL   *string        `gorm:"column:expense_receipt_url;type:text" json:"expense_receipt_url,omitempty"`
	ExpenseCreatedBy    *uuid.UUID     `gorm:"column:expense_created_by;type:uuid" json:"expense_created_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ExpenseID == uuid.Nil {
		e.ExpenseID = uuid.New()
	}
	return nil
}
