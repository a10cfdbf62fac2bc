package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/donations/donations/model"
	expenseModel "mwit_alumni_backend/internals/features/finance/expenses/model"
	statsModel "mwit_alumni_backend/internals/features/finance/stats/model"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
)

func setup(t *testing.T) (*gorm.DB, *DonationService) {
	db := testdb.New(t, &model.Donation{}, &expenseModel.Expense{}, &statsModel.YearlyStats{})
	stats := &statsService.StatsService{Loc: time.FixedZone("ICT", 7*60*60)}
	return db, NewDonationService(db, stats)
}

func seedDonation(t *testing.T, db *gorm.DB, amount int64, at time.Time) model.Donation {
	t.Helper()
	d := model.Donation{
		DonationName:   "สมชาย ใจดี",
		DonationEmail:  "somchai@gmail.com",
		DonationAmount: decimal.NewFromInt(amount),
		CreatedAt:      at,
	}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func yearly(t *testing.T, db *gorm.DB, year string) statsModel.YearlyStats {
	t.Helper()
	var s statsModel.YearlyStats
	require.NoError(t, db.First(&s, "academic_year = ?", year).Error)
	return s
}

func TestChangeStatusTransitions(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	admin := uuid.New()

	d := seedDonation(t, db, 1500, time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC))
	seedDonation(t, db, 700, time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC))
	assert.Equal(t, constants.DonationPending, d.DonationStatus)

	// pending -> approved
	ch, err := svc.ChangeStatus(ctx, d.DonationID, constants.DonationApproved, &admin)
	require.NoError(t, err)
	assert.Equal(t, constants.DonationPending, ch.OldStatus)
	assert.Equal(t, constants.DonationApproved, ch.NewStatus)
	assert.Equal(t, "2567", ch.Year)
	require.NotNil(t, ch.Donation.DonationApprovedAt)
	require.NotNil(t, ch.Donation.DonationApprovedBy)
	assert.Equal(t, admin, *ch.Donation.DonationApprovedBy)

	s := yearly(t, db, "2567")
	assert.True(t, s.TotalDonations.Equal(decimal.NewFromInt(1500)), "got %s", s.TotalDonations)
	assert.EqualValues(t, 1, s.DonorCount)

	// approved -> pending
	ch, err = svc.ChangeStatus(ctx, d.DonationID, constants.DonationPending, &admin)
	require.NoError(t, err)
	assert.Equal(t, constants.DonationApproved, ch.OldStatus)
	assert.Nil(t, ch.Donation.DonationApprovedAt)
	assert.Nil(t, ch.Donation.DonationApprovedBy)

	s = yearly(t, db, "2567")
	assert.True(t, s.TotalDonations.IsZero())
	assert.EqualValues(t, 0, s.DonorCount)

	// pending -> rejected
	ch, err = svc.ChangeStatus(ctx, d.DonationID, constants.DonationRejected, &admin)
	require.NoError(t, err)
	assert.Equal(t, constants.DonationRejected, ch.Donation.DonationStatus)

	var stored model.Donation
	require.NoError(t, db.First(&stored, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, constants.DonationRejected, stored.DonationStatus)
	assert.True(t, yearly(t, db, "2567").TotalDonations.IsZero())
}

func TestChangeStatusRejectedToApproved(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()

	d := seedDonation(t, db, 250, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	_, err := svc.ChangeStatus(ctx, d.DonationID, constants.DonationRejected, nil)
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, d.DonationID, constants.DonationApproved, nil)
	require.NoError(t, err)

	s := yearly(t, db, "2568")
	assert.True(t, s.TotalDonations.Equal(decimal.NewFromInt(250)))
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(250)))
}

func TestChangeStatusUsesLocalYearBoundary(t *testing.T) {
	db, svc := setup(t)

	// 2024-12-31 17:30 UTC is already 2025-01-01 in Bangkok.
	d := seedDonation(t, db, 900, time.Date(2024, 12, 31, 17, 30, 0, 0, time.UTC))
	ch, err := svc.ChangeStatus(context.Background(), d.DonationID, constants.DonationApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, "2568", ch.Year)
	assert.True(t, yearly(t, db, "2568").TotalDonations.Equal(decimal.NewFromInt(900)))
}

func TestChangeStatusNotFound(t *testing.T) {
	db, svc := setup(t)

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), constants.DonationApproved, nil)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, db.Model(&statsModel.YearlyStats{}).Count(&n).Error)
	assert.Zero(t, n)
}
