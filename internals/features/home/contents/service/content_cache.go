package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Yiling-J/theine-go"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/contents/model"
)

const (
	activeKey  = "active"
	defaultTTL = 5 * time.Minute
)

// PublicContent serves active content blocks from an in-process cache.
// Admin writes call Invalidate.
type PublicContent struct {
	cache *theine.LoadingCache[string, []model.ContentBlock]
}

func NewPublicContent(db *gorm.DB, ttl time.Duration) (*PublicContent, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	cache, err := theine.NewBuilder[string, []model.ContentBlock](16).BuildWithLoader(
		func(ctx context.Context, _ string) (theine.Loaded[[]model.ContentBlock], error) {
			var list []model.ContentBlock
			err := db.WithContext(ctx).
				Where("is_active = ?", true).
				Order("sort_order ASC").Order("key ASC").
				Find(&list).Error
			if err != nil {
				return theine.Loaded[[]model.ContentBlock]{}, err
			}
			return theine.Loaded[[]model.ContentBlock]{Value: list, Cost: 1, TTL: ttl}, nil
		})
	if err != nil {
		return nil, err
	}
	return &PublicContent{cache: cache}, nil
}

// Active returns every active block, optionally narrowed to keys.
func (p *PublicContent) Active(ctx context.Context, keys ...string) ([]model.ContentBlock, error) {
	all, err := p.cache.Get(ctx, activeKey)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return all, nil
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	out := make([]model.ContentBlock, 0, len(keys))
	for _, b := range all {
		if _, ok := want[b.Key]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (p *PublicContent) Invalidate() {
	p.cache.Delete(activeKey)
	slog.Debug("content cache invalidated")
}

func (p *PublicContent) Close() {
	p.cache.Close()
}
