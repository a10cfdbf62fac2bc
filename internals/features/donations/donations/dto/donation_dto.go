package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/donations/donations/model"
)

/* =========================================================
   REQUEST: public submission (JSON or multipart)
   ========================================================= */

type CreateDonationRequest struct {
	DonationName               string          `json:"donation_name" validate:"required,max=150"`
	DonationEmail              string          `json:"donation_email" validate:"required,email,max=255"`
	DonationPhone              *string         `json:"donation_phone" validate:"omitempty,max=30"`
	DonationTaxID              *string         `json:"donation_tax_id" validate:"omitempty,numeric,len=13"`
	DonationAddress            *string         `json:"donation_address" validate:"omitempty,max=1000"`
	DonationGeneration         *string         `json:"donation_generation" validate:"omitempty,max=50"`
	DonationMessage            *string         `json:"donation_message" validate:"omitempty,max=2000"`
	DonationAmount             decimal.Decimal `json:"donation_amount"`
	DonationTransferDate       *string         `json:"donation_transfer_date"`
	DonationPublicationConsent string          `json:"donation_publication_consent" validate:"omitempty,oneof=full name_only anonymous"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *CreateDonationRequest) Normalize() {
	r.DonationName = strings.TrimSpace(r.DonationName)
	r.DonationEmail = strings.ToLower(strings.TrimSpace(r.DonationEmail))
	// stored as numeric(14,2); the positive check runs on the stored value
	r.DonationAmount = r.DonationAmount.Round(2)
	r.DonationPhone = trimPtr(r.DonationPhone)
	r.DonationTaxID = trimPtr(r.DonationTaxID)
	r.DonationAddress = trimPtr(r.DonationAddress)
	r.DonationGeneration = trimPtr(r.DonationGeneration)
	r.DonationMessage = trimPtr(r.DonationMessage)
	r.DonationTransferDate = trimPtr(r.DonationTransferDate)
	r.DonationPublicationConsent = strings.ToLower(strings.TrimSpace(r.DonationPublicationConsent))
	if r.DonationPublicationConsent == "" {
		r.DonationPublicationConsent = constants.ConsentFull
	}
}

// ParseTransferDate accepts "YYYY-MM-DD" (read in loc) or RFC3339.
func ParseTransferDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (r *CreateDonationRequest) ToModel(transferDate *time.Time, slipURL *string) *model.Donation {
	return &model.Donation{
		DonationName:               r.DonationName,
		DonationEmail:              r.DonationEmail,
		DonationPhone:              r.DonationPhone,
		DonationTaxID:              r.DonationTaxID,
		DonationAddress:            r.DonationAddress,
		DonationGeneration:         r.DonationGeneration,
		DonationMessage:            r.DonationMessage,
		DonationAmount:             r.DonationAmount.Round(2),
		DonationTransferDate:       transferDate,
		DonationSlipURL:            slipURL,
		DonationStatus:             constants.DonationPending,
		DonationPublicationConsent: r.DonationPublicationConsent,
	}
}

type UpdateDonationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type CreateDonationResponse struct {
	DonationID     uuid.UUID       `json:"donation_id"`
	DonationStatus string          `json:"donation_status"`
	DonationAmount decimal.Decimal `json:"donation_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PublicDonation is what anyone may see. Contact and tax details never appear here.
type PublicDonation struct {
	DonationID         uuid.UUID       `json:"donation_id"`
	DonationName       string          `json:"donation_name"`
	DonationGeneration *string         `json:"donation_generation,omitempty"`
	DonationAmount     decimal.Decimal `json:"donation_amount"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToPublic applies the donor's publication consent.
func ToPublic(d *model.Donation) PublicDonation {
	out := PublicDonation{
		DonationID:     d.DonationID,
		DonationAmount: d.DonationAmount,
		CreatedAt:      d.CreatedAt,
	}
	switch d.DonationPublicationConsent {
	case constants.ConsentFull:
		out.DonationName = d.DonationName
		out.DonationGeneration = d.DonationGeneration
	case constants.ConsentNameOnly:
		out.DonationName = d.DonationName
	default:
		out.DonationName = constants.AnonymousDonorLabel
	}
	return out
}

func ToPublicList(list []model.Donation) []PublicDonation {
	out := make([]PublicDonation, 0, len(list))
	for i := range list {
		out = append(out, ToPublic(&list[i]))
	}
	return out
}
