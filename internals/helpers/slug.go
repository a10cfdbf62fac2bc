package helper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions controls the uniqueness lookup.
type SlugOptions struct {
	Table      string
	SlugColumn string
	// ExcludeColumn/ExcludeID skip the row being updated.
	ExcludeColumn string
	ExcludeID     any
	MaxLen        int
	// DefaultBase is used when the title slugifies to nothing.
	DefaultBase string
}

// Slugify transliterates (Thai included) to [a-z0-9-].
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}
	out := slug.Make(norm.NFC.String(strings.TrimSpace(s)))
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	return out
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

func isTaken(ctx context.Context, db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}
	q := db.WithContext(ctx).Table(opts.Table).
		Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", opts.SlugColumn), candidate)
	if opts.ExcludeColumn != "" && opts.ExcludeID != nil {
		q = q.Where(fmt.Sprintf("%s <> ?", opts.ExcludeColumn), opts.ExcludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug slugifies base and appends -2, -3, ... until the
// candidate is free (case-insensitive).
func GenerateUniqueSlug(ctx context.Context, db *gorm.DB, opts SlugOptions, base string) (string, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	s := Slugify(base, maxLen)
	if s == "" {
		s = Slugify(opts.DefaultBase, maxLen)
	}
	if s == "" {
		s = "item"
	}

	taken, err := isTaken(ctx, db, opts, s)
	if err != nil {
		return "", err
	}
	if !taken {
		return s, nil
	}

	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := s
		if len(candidate)+len(suf) > maxLen {
			candidate = cutToLen(candidate, maxLen-len(suf))
			if candidate == "" {
				candidate = "x"
			}
		}
		candidate += suf

		taken, err = isTaken(ctx, db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
