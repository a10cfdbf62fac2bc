package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
)

type Donation struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`

	DonationName       string  `gorm:"column:donation_name;type:varchar(150);not null" json:"donation_name"`
	DonationEmail      string  `gorm:"column:donation_email;type:varchar(255);not null" json:"donation_email"`
	DonationPhone      *string `gorm:"column:donation_phone;type:varchar(30)" json:"donation_phone,omitempty"`
	DonationTaxID      *string `gorm:"column:donation_tax_id;type:varchar(20)" json:"donation_tax_id,omitempty"`
	DonationAddress    *string `gorm:"column:donation_address;type:text" json:"donation_address,omitempty"`
	DonationGeneration *string `gorm:"column:donation_generation;type:varchar(50);index" json:"donation_generation,omitempty"`
	DonationMessage    *string `gorm:"column:donation_message;type:text" json:"donation_message,omitempty"`

	DonationAmount decimal.Decimal `gorm:"column:donation_amount;type:numeric(14,2);not null" json:"donation_amount"`

	DonationSlipURL      *string    `gorm:"column:donation_slip_url;type:text" json:"donation_slip_url,omitempty"`
	DonationTransferDate *time.Time `gorm:"column:donation_transfer_date" json:"donation_transfer_date,omitempty"`

	DonationStatus             string `gorm:"column:donation_status;type:varchar(20);not null" json:"donation_status"`
	DonationPublicationConsent string `gorm:"column:donation_publication_consent;type:varchar(20);not null" json:"donation_publication_consent"`

	DonationApprovedAt *time.Time `gorm:"column:donation_approved_at" json:"donation_approved_at,omitempty"`
	DonationApprovedBy *uuid.UUID `gorm:"column:donation_approved_by;type:uuid" json:"donation_approved_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) BeforeCreate(*gorm.DB) error {
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	if d.DonationStatus == "" {
		d.DonationStatus = constants.DonationPending
	}
	if d.DonationPublicationConsent == "" {
		d.DonationPublicationConsent = constants.ConsentFull
	}
	return nil
}

func IsValidStatus(s string) bool {
	switch s {
	case constants.DonationPending, constants.DonationApproved, constants.DonationRejected:
		return true
	}
	return false
}
