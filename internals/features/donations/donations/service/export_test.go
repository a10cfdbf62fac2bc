package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/donations/donations/model"
)

func exportFixture() []model.Donation {
	gen := "MWIT 20"
	tax := "1234567890123"
	return []model.Donation{
		{
			DonationName:               "สมหญิง",
			DonationEmail:              "somying@mwit.ac.th",
			DonationGeneration:         &gen,
			DonationTaxID:              &tax,
			DonationAmount:             decimal.RequireFromString("1200.50"),
			DonationStatus:             constants.DonationApproved,
			DonationPublicationConsent: constants.ConsentFull,
			CreatedAt:                  time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportFixture(), time.FixedZone("ICT", 7*60*60)))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte("\xEF\xBB\xBF")))

	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "สมหญิง", rows[1][2])
	assert.Equal(t, "1234567890123", rows[1][5])
	assert.Equal(t, "1200.50", rows[1][8])
	assert.Equal(t, "2025-01-01 01:00:00", rows[1][1])
}

func TestBuildXLSX(t *testing.T) {
	buf, err := BuildXLSX(exportFixture(), time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "donation_id", rows[0][0])
	assert.Equal(t, "สมหญิง", rows[1][2])
	assert.Equal(t, "1200.5", rows[1][8])
}
