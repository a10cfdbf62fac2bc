package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/donations/donations/model"
)

func TestToPublicHonoursConsent(t *testing.T) {
	gen := "รุ่น 15"
	phone := "0812345678"
	base := model.Donation{
		DonationName:       "กมล",
		DonationEmail:      "kamol@gmail.com",
		DonationPhone:      &phone,
		DonationGeneration: &gen,
		DonationAmount:     decimal.NewFromInt(500),
	}

	cases := []struct {
		consent string
		name    string
		gen     *string
	}{
		{constants.ConsentFull, "กมล", &gen},
		{constants.ConsentNameOnly, "กมล", nil},
		{constants.ConsentAnonymous, constants.AnonymousDonorLabel, nil},
	}
	for _, tc := range cases {
		t.Run(tc.consent, func(t *testing.T) {
			d := base
			d.DonationPublicationConsent = tc.consent
			got := ToPublic(&d)
			assert.Equal(t, tc.name, got.DonationName)
			assert.Equal(t, tc.gen, got.DonationGeneration)
			assert.True(t, got.DonationAmount.Equal(decimal.NewFromInt(500)))
		})
	}
}

func TestNormalizeDefaultsConsent(t *testing.T) {
	blank := "   "
	r := CreateDonationRequest{
		DonationName:   "  กมล ",
		DonationEmail:  " Kamol@Gmail.com ",
		DonationPhone:  &blank,
		DonationAmount: decimal.RequireFromString("0.004"),
	}
	r.Normalize()
	assert.True(t, r.DonationAmount.IsZero(), r.DonationAmount.String())
	assert.Equal(t, "กมล", r.DonationName)
	assert.Equal(t, "kamol@gmail.com", r.DonationEmail)
	assert.Nil(t, r.DonationPhone)
	assert.Equal(t, constants.ConsentFull, r.DonationPublicationConsent)
}

func TestParseTransferDate(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)

	got, err := ParseTransferDate("2024-05-01", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 30, 17, 0, 0, 0, time.UTC), got)

	got, err = ParseTransferDate("2024-05-01T10:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got)

	_, err = ParseTransferDate("01/05/2024", loc)
	assert.Error(t, err)
}
