package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/shortlinks/model"
)

// Redirect outcomes, also used as metric labels.
const (
	OutcomeHit     = "hit"
	OutcomeMissing = "missing"
	OutcomeExpired = "expired"
)

type Resolution struct {
	Target  string
	Outcome string
}

// Resolve finds the active link for code and counts the visit. Target is empty
// unless Outcome is OutcomeHit; callers fall back to the site root.
func Resolve(ctx context.Context, db *gorm.DB, code string, now time.Time) (Resolution, error) {
	var link model.ShortLink
	err := db.WithContext(ctx).
		Where("short_code = ? AND active = ?", code, true).
		Take(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolution{Outcome: OutcomeMissing}, nil
	}
	if err != nil {
		return Resolution{}, err
	}
	if !link.Live(now) {
		return Resolution{Outcome: OutcomeExpired}, nil
	}

	// single statement; concurrent visits never lose an increment
	res := db.WithContext(ctx).Model(&model.ShortLink{}).
		Where("short_link_id = ? AND active = ?", link.ShortLinkID, true).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if res.Error != nil {
		return Resolution{}, res.Error
	}
	if res.RowsAffected == 0 {
		// deactivated or expired between the read and the update
		return Resolution{Outcome: OutcomeExpired}, nil
	}
	return Resolution{Target: link.TargetURL, Outcome: OutcomeHit}, nil
}
