package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/home/blogs/model"
)

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	db := testdb.New(t, &model.BlogPost{}, &model.BlogImage{})
	ctx := context.Background()

	var ids []uuid.UUID
	for i, want := range []string{"homecoming-day", "homecoming-day-2", "homecoming-day-3"} {
		slug, err := UniqueSlug(ctx, db, "Homecoming Day", nil)
		require.NoError(t, err)
		assert.Equal(t, want, slug, "attempt %d", i)

		p := model.BlogPost{BlogPostTitle: "Homecoming Day", BlogPostSlug: slug, BlogPostContent: "x"}
		require.NoError(t, db.Create(&p).Error)
		ids = append(ids, p.BlogPostID)
	}

	// editing a post keeps its own slug available
	slug, err := UniqueSlug(ctx, db, "homecoming-day", &ids[0])
	require.NoError(t, err)
	assert.Equal(t, "homecoming-day", slug)
}

func TestUniqueSlugIsCaseInsensitive(t *testing.T) {
	db := testdb.New(t, &model.BlogPost{}, &model.BlogImage{})
	require.NoError(t, db.Create(&model.BlogPost{BlogPostTitle: "x", BlogPostSlug: "News", BlogPostContent: "x"}).Error)

	slug, err := UniqueSlug(context.Background(), db, "news", nil)
	require.NoError(t, err)
	assert.Equal(t, "news-2", slug)
}

func TestUniqueSlugFallback(t *testing.T) {
	db := testdb.New(t, &model.BlogPost{}, &model.BlogImage{})

	slug, err := UniqueSlug(context.Background(), db, "!!!", nil)
	require.NoError(t, err)
	assert.Equal(t, "post", slug)
}

func TestSetStatusStampsFirstPublishOnly(t *testing.T) {
	p := model.BlogPost{}
	first := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	SetStatus(&p, constants.BlogDraft, first)
	assert.Nil(t, p.BlogPostPublishedAt)

	SetStatus(&p, constants.BlogPublished, first)
	require.NotNil(t, p.BlogPostPublishedAt)
	assert.Equal(t, first, *p.BlogPostPublishedAt)

	SetStatus(&p, constants.BlogArchived, first.Add(time.Hour))
	SetStatus(&p, constants.BlogPublished, first.Add(2*time.Hour))
	assert.Equal(t, first, *p.BlogPostPublishedAt)
}

func TestReplaceImagesKeepsOrder(t *testing.T) {
	db := testdb.New(t, &model.BlogPost{}, &model.BlogImage{})
	ctx := context.Background()
	post := model.BlogPost{BlogPostTitle: "t", BlogPostSlug: "t", BlogPostContent: "x"}
	require.NoError(t, db.Create(&post).Error)

	_, err := ReplaceImages(ctx, db, post.BlogPostID, []model.BlogImage{
		{BlogImageURL: "https://cdn.example.com/a.webp"},
		{BlogImageURL: "https://cdn.example.com/b.webp"},
	})
	require.NoError(t, err)

	dropped, err := ReplaceImages(ctx, db, post.BlogPostID, []model.BlogImage{
		{BlogImageURL: "https://cdn.example.com/c.webp"},
		{BlogImageURL: "https://cdn.example.com/a.webp"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/b.webp"}, dropped)

	var imgs []model.BlogImage
	require.NoError(t, db.Where("blog_image_post_id = ?", post.BlogPostID).Order("blog_image_sort_order").Find(&imgs).Error)
	require.Len(t, imgs, 2)
	assert.Equal(t, "https://cdn.example.com/c.webp", imgs[0].BlogImageURL)
	assert.Equal(t, 0, imgs[0].BlogImageSortOrder)
	assert.Equal(t, "https://cdn.example.com/a.webp", imgs[1].BlogImageURL)
	assert.Equal(t, 1, imgs[1].BlogImageSortOrder)
}
