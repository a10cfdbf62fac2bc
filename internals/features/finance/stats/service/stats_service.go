package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	donationModel "mwit_alumni_backend/internals/features/donations/donations/model"
	expenseModel "mwit_alumni_backend/internals/features/finance/expenses/model"
	"mwit_alumni_backend/internals/features/finance/stats/model"
	helperMetrics "mwit_alumni_backend/internals/helpers/metrics"
)

var ErrInvalidYear = errors.New("invalid academic year")

type StatsService struct {
	Loc *time.Location
}

func NewStatsService() *StatsService {
	return &StatsService{Loc: configs.AppLocation()}
}

func (s *StatsService) location() *time.Location {
	if s == nil || s.Loc == nil {
		return configs.AppLocation()
	}
	return s.Loc
}

// AcademicYearFor is the academic year a donation created at t counts toward.
func (s *StatsService) AcademicYearFor(t time.Time) string {
	return AcademicYearFor(t, s.location())
}

type donationAgg struct {
	Total decimal.Decimal
	Cnt   int64
}

type expenseAgg struct {
	ExpenseType string
	Total       decimal.Decimal
}

// Recompute rebuilds the stats row of one academic year from the ledgers and
// upserts it. Run it on the same tx as the write that changed the ledgers.
func (s *StatsService) Recompute(ctx context.Context, tx *gorm.DB, academicYear string) (*model.YearlyStats, error) {
	year, err := NormalizeAcademicYear(academicYear)
	if err != nil {
		return nil, ErrInvalidYear
	}
	start, end, _ := YearWindow(year, s.location())
	db := tx.WithContext(ctx)

	var d donationAgg
	if err := db.Model(&donationModel.Donation{}).
		Select("COALESCE(SUM(donation_amount), 0) AS total, COUNT(*) AS cnt").
		Where("donation_status = ? AND created_at >= ? AND created_at < ?", constants.DonationApproved, start, end).
		Scan(&d).Error; err != nil {
		return nil, err
	}

	var rows []expenseAgg
	if err := db.Model(&expenseModel.Expense{}).
		Select("expense_type, COALESCE(SUM(expense_amount), 0) AS total").
		Where("expense_academic_year = ?", year).
		Group("expense_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := model.YearlyStats{
		AcademicYear:   year,
		TotalDonations: d.Total.Round(2),
		DonorCount:     d.Cnt,
		TotalExpenses:  decimal.Zero,
		TotalIncome:    decimal.Zero,
	}
	for _, r := range rows {
		switch r.ExpenseType {
		case constants.ExpenseOutcome:
			out.TotalExpenses = r.Total.Round(2)
		case constants.ExpenseIncome:
			out.TotalIncome = r.Total.Round(2)
		}
	}
	out.Balance = out.TotalDonations.Add(out.TotalIncome).Sub(out.TotalExpenses)

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "academic_year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_donations", "total_expenses", "total_income", "donor_count", "balance", "updated_at",
		}),
	}).Create(&out).Error; err != nil {
		return nil, err
	}

	var saved model.YearlyStats
	if err := db.Where("academic_year = ?", year).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// RecomputeYears runs Recompute for each distinct year, skipping blanks.
func (s *StatsService) RecomputeYears(ctx context.Context, tx *gorm.DB, years ...string) error {
	seen := make(map[string]struct{}, len(years))
	for _, y := range years {
		if y == "" {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		if _, err := s.Recompute(ctx, tx, y); err != nil {
			return err
		}
	}
	return nil
}

// KnownYears lists every academic year with expenses, approved donations or a stats row.
func (s *StatsService) KnownYears(ctx context.Context, db *gorm.DB) ([]string, error) {
	set := map[string]struct{}{}
	db = db.WithContext(ctx)

	var expYears []string
	if err := db.Model(&expenseModel.Expense{}).Distinct().Pluck("expense_academic_year", &expYears).Error; err != nil {
		return nil, err
	}
	var statYears []string
	if err := db.Model(&model.YearlyStats{}).Pluck("academic_year", &statYears).Error; err != nil {
		return nil, err
	}
	for _, y := range append(expYears, statYears...) {
		if n, err := NormalizeAcademicYear(y); err == nil {
			set[n] = struct{}{}
		}
	}

	// approved donations: every calendar year between the first and the last one
	var first, last donationModel.Donation
	approved := db.Model(&donationModel.Donation{}).Where("donation_status = ?", constants.DonationApproved)
	if err := approved.Session(&gorm.Session{}).Order("created_at ASC").Limit(1).Find(&first).Error; err != nil {
		return nil, err
	}
	if err := approved.Session(&gorm.Session{}).Order("created_at DESC").Limit(1).Find(&last).Error; err != nil {
		return nil, err
	}
	if first.DonationID != uuid.Nil {
		loc := s.location()
		for y := first.CreatedAt.In(loc).Year(); y <= last.CreatedAt.In(loc).Year(); y++ {
			set[strconv.Itoa(y+beOffset)] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Strings(out)
	return out, nil
}

// RecomputeAll repairs every known year, one transaction per year.
func (s *StatsService) RecomputeAll(ctx context.Context, db *gorm.DB, trigger string) ([]model.YearlyStats, error) {
	years, err := s.KnownYears(ctx, db)
	if err != nil {
		helperMetrics.StatsRecomputes.WithLabelValues(trigger, "error").Inc()
		return nil, err
	}
	out := make([]model.YearlyStats, 0, len(years))
	for _, y := range years {
		var row *model.YearlyStats
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			row, err = s.Recompute(ctx, tx, y)
			return err
		})
		if err != nil {
			helperMetrics.StatsRecomputes.WithLabelValues(trigger, "error").Inc()
			return out, err
		}
		out = append(out, *row)
	}
	helperMetrics.StatsRecomputes.WithLabelValues(trigger, "ok").Inc()
	slog.InfoContext(ctx, "yearly stats recomputed", "trigger", trigger, "years", len(out))
	return out, nil
}
