package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

const DefaultBlacklistCleanupSchedule = "0 3 * * *"

// RegisterBlacklistCleanup purges revoked session tokens that have expired anyway.
func RegisterBlacklistCleanup(c *cron.Cron, db *gorm.DB) error {
	schedule := configs.GetEnv("BLACKLIST_CLEANUP_CRON", DefaultBlacklistCleanupSchedule)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := helperAuth.PurgeExpired(ctx, db)
		if err != nil {
			slog.Error("token blacklist cleanup failed", "err", err)
			return
		}
		slog.Info("token blacklist cleaned", "deleted", n)
	})
	if err != nil {
		return err
	}
	slog.Info("token blacklist cleanup scheduled", "schedule", schedule)
	return nil
}
