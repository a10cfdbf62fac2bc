package helper

import (
	"context"
	"log/slog"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"

	"mwit_alumni_backend/internals/configs"
)

type TrashReaperConfig struct {
	Prefix        string
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

func TrashReaperConfigFromEnv() TrashReaperConfig {
	return TrashReaperConfig{
		Prefix:        configs.GetEnv("REAPER_PREFIX", TrashPrefix),
		RetentionDays: configs.GetEnvInt("UPLOAD_RETENTION_DAYS", 30),
		CronSchedule:  configs.GetEnv("REAPER_CRON", "15 2 * * *"),
		DryRun:        configs.GetEnvBool("REAPER_DRY_RUN", false),
	}
}

// RegisterTrashReaper schedules the trashed-upload cleanup on c.
func RegisterTrashReaper(c *cron.Cron, svc *OSSService, cfg TrashReaperConfig) error {
	if svc == nil {
		slog.Warn("trash reaper: object storage not configured, skipping")
		return nil
	}
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := runOSSReaper(ctx, svc.Bucket, cfg.Prefix, retention, cfg.DryRun); err != nil {
			slog.Error("trash reaper failed", "err", err)
		}
	})
	if err != nil {
		return err
	}
	slog.Info("trash reaper scheduled", "schedule", cfg.CronSchedule, "prefix", cfg.Prefix,
		"retention_days", cfg.RetentionDays, "dry_run", cfg.DryRun)
	return nil
}

func runOSSReaper(ctx context.Context, bucket *oss.Bucket, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)

	marker := oss.Marker("")
	var keys []string
	total := 0
	for {
		lor, err := bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			total++
			if obj.Key != "" && obj.LastModified.Before(threshold) {
				keys = append(keys, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	if len(keys) == 0 {
		slog.Info("trash reaper: nothing to delete", "scanned", total, "prefix", prefix)
		return nil
	}
	if dryRun {
		slog.Info("trash reaper: dry run", "would_delete", len(keys), "scanned", total)
		return nil
	}

	deleted := 0
	for i := 0; i < len(keys); i += 1000 {
		end := min(i+1000, len(keys))
		batch := keys[i:end]
		if _, err := bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			slog.Error("trash reaper: delete batch failed", "from", i, "to", end, "err", err)
			continue
		}
		deleted += len(batch)
	}
	slog.Info("trash reaper: done", "deleted", deleted, "scanned", total, "prefix", prefix)
	return nil
}
