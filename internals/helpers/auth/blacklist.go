package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenBlacklist stores the HMAC of revoked session tokens until they expire.
type TokenBlacklist struct {
	Token     string    `gorm:"column:token;type:varchar(64);primaryKey" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke blacklists a raw token until expiresAt.
func Revoke(ctx context.Context, db *gorm.DB, rawToken, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return nil
	}
	row := TokenBlacklist{Token: hmacHex(rawToken, secret), ExpiredAt: expiresAt.UTC()}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&row).Error
}

func IsRevoked(ctx context.Context, db *gorm.DB, rawToken, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return false, nil
	}
	var cnt int64
	err := db.WithContext(ctx).Model(&TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawToken, secret), time.Now().UTC()).
		Count(&cnt).Error
	return cnt > 0, err
}

const userRevocationPrefix = "user:"

// RevokeUserSessions invalidates every session of userID issued up to now.
// The marker lives in token_blacklist next to single-token revocations and
// expires with the longest session that could still be alive.
func RevokeUserSessions(ctx context.Context, db *gorm.DB, userID uuid.UUID, sessionTTL time.Duration) error {
	if db == nil || userID == uuid.Nil {
		return nil
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	now := time.Now().UTC().Truncate(time.Second)
	row := TokenBlacklist{
		Token:     userRevocationPrefix + userID.String(),
		ExpiredAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at", "created_at"}),
		}).
		Create(&row).Error
}

// IsUserRevoked reports whether s was issued at or before the last
// RevokeUserSessions call for its user.
func IsUserRevoked(ctx context.Context, db *gorm.DB, s *Session) (bool, error) {
	if db == nil || s == nil {
		return false, nil
	}
	var rows []TokenBlacklist
	err := db.WithContext(ctx).
		Where("token = ? AND expired_at > ?", userRevocationPrefix+s.UserID.String(), time.Now().UTC()).
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return false, err
	}
	return !s.IssuedAt.After(rows[0].CreatedAt), nil
}

// PurgeExpired removes rows whose token has expired anyway.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Where("expired_at <= ?", time.Now().UTC()).Delete(&TokenBlacklist{})
	return res.RowsAffected, res.Error
}
