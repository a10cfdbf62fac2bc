package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const DefaultRecomputeSchedule = "30 2 * * *"

// RegisterNightlyRecompute schedules RecomputeAll to repair any drift in the rollup.
func RegisterNightlyRecompute(c *cron.Cron, db *gorm.DB, svc *StatsService, schedule string) error {
	if schedule == "" {
		schedule = DefaultRecomputeSchedule
	}
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := svc.RecomputeAll(ctx, db, "cron"); err != nil {
			slog.Error("nightly stats recompute failed", "err", err)
		}
	})
	if err != nil {
		return err
	}
	slog.Info("stats recompute scheduled", "schedule", schedule)
	return nil
}
