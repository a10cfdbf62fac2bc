package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/shortlinks/model"
)

// CodeAlphabet leaves out 0, O, 1, l and I.
const CodeAlphabet = "23456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	DefaultCodeLength = 6
	MaxCodeAttempts   = 100
)

var ErrCodeSpaceExhausted = errors.New("could not find a free short code")

// RandomCode draws n characters from CodeAlphabet with crypto/rand.
func RandomCode(n int) (string, error) {
	if n <= 0 {
		n = DefaultCodeLength
	}
	max := big.NewInt(int64(len(CodeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = CodeAlphabet[k.Int64()]
	}
	return string(b), nil
}

// CodeTaken is a case-sensitive lookup; codes differing only by case are distinct.
func CodeTaken(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.ShortLink{}).
		Where("short_code = ?", code).
		Count(&n).Error
	return n > 0, err
}

// GenerateCode retries on collision up to MaxCodeAttempts times.
func GenerateCode(ctx context.Context, db *gorm.DB, length int) (string, error) {
	return generateWith(ctx, db, length, RandomCode)
}

func generateWith(ctx context.Context, db *gorm.DB, length int, next func(int) (string, error)) (string, error) {
	for i := 0; i < MaxCodeAttempts; i++ {
		code, err := next(length)
		if err != nil {
			return "", err
		}
		taken, err := CodeTaken(ctx, db, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
