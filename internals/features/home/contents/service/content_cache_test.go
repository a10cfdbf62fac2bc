package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/home/contents/model"
)

func TestPublicContentCachesUntilInvalidated(t *testing.T) {
	db := testdb.New(t, &model.ContentBlock{})
	require.NoError(t, db.Create(&model.ContentBlock{Key: "hero", Title: "Welcome", IsActive: true, SortOrder: 1}).Error)
	require.NoError(t, db.Create(&model.ContentBlock{Key: "hidden", IsActive: false}).Error)

	pc, err := NewPublicContent(db, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pc.Close)
	ctx := context.Background()

	list, err := pc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hero", list[0].Key)

	require.NoError(t, db.Create(&model.ContentBlock{Key: "contact", IsActive: true, SortOrder: 2}).Error)

	list, err = pc.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "served from cache")

	pc.Invalidate()
	list, err = pc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	only, err := pc.Active(ctx, "contact")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "contact", only[0].Key)
}
