package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// YearlyStats is derived data: always rewritten by the rollup, never edited directly.
type YearlyStats struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AcademicYear   string          `gorm:"column:academic_year;type:varchar(10);uniqueIndex;not null" json:"academic_year"`
	TotalDonations decimal.Decimal `gorm:"column:total_donations;type:numeric(14,2);not null" json:"total_donations"`
	TotalExpenses  decimal.Decimal `gorm:"column:total_expenses;type:numeric(14,2);not null" json:"total_expenses"`
	TotalIncome    decimal.Decimal `gorm:"column:total_income;type:numeric(14,2);not null" json:"total_income"`
	DonorCount     int64           `gorm:"column:donor_count;not null" json:"donor_count"`
	Balance        decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null" json:"balance"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (YearlyStats) TableName() string {
	return "yearly_stats"
}

func (y *YearlyStats) BeforeCreate(*gorm.DB) error {
	if y.ID == uuid.Nil {
		y.ID = uuid.New()
	}
	return nil
}
