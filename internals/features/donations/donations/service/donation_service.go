package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/donations/donations/model"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
)

type StatusChange struct {
	Donation  *model.Donation
	OldStatus string
	NewStatus string
	Year      string
}

type DonationService struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewDonationService(db *gorm.DB, stats *statsService.StatsService) *DonationService {
	return &DonationService{DB: db, Stats: stats}
}

// ChangeStatus writes the new status (any transition is allowed) and rebuilds
// the stats of the donation's academic year in the same transaction.
func (s *DonationService) ChangeStatus(ctx context.Context, id uuid.UUID, status string, actor *uuid.UUID) (*StatusChange, error) {
	var change StatusChange
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d model.Donation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, "donation_id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]any{"donation_status": status}
		if status == constants.DonationApproved {
			now := time.Now().UTC()
			updates["donation_approved_at"] = now
			updates["donation_approved_by"] = actor
		} else {
			updates["donation_approved_at"] = nil
			updates["donation_approved_by"] = nil
		}

		old := d.DonationStatus
		if err := tx.Model(&d).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&d, "donation_id = ?", id).Error; err != nil {
			return err
		}

		year := s.Stats.AcademicYearFor(d.CreatedAt)
		if _, err := s.Stats.Recompute(ctx, tx, year); err != nil {
			return err
		}
		change = StatusChange{Donation: &d, OldStatus: old, NewStatus: status, Year: year}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "donation status changed",
		"donation_id", id,
		"from", change.OldStatus,
		"to", change.NewStatus,
		"by", actor,
		"academic_year", change.Year,
	)
	return &change, nil
}
