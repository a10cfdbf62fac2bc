package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashKey(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "trash/2024/05/01/153000__cover.webp", TrashKey("blog/2024/cover.webp", now))
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	key := BuildObjectKey("uploads", "/blog/", "My Photo.WEBP", now)
	assert.True(t, strings.HasPrefix(key, "uploads/blog/my-photo_20240501_153000_"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)
}

func TestKeyFromPublicURL(t *testing.T) {
	s := &OSSService{PublicBase: "https://cdn.example.com", BucketName: "b", Endpoint: "https://oss-ap-southeast-1.aliyuncs.com"}

	key, err := s.KeyFromPublicURL("https://cdn.example.com/blog/a.webp")
	require.NoError(t, err)
	assert.Equal(t, "blog/a.webp", key)

	key, err = s.KeyFromPublicURL("https://b.oss-ap-southeast-1.aliyuncs.com/slips/x.webp")
	require.NoError(t, err)
	assert.Equal(t, "slips/x.webp", key)

	assert.Equal(t, "https://cdn.example.com/k.webp", s.PublicURL("k.webp"))
	s.PublicBase = ""
	assert.Equal(t, "https://b.oss-ap-southeast-1.aliyuncs.com/k.webp", s.PublicURL("k.webp"))
}

func TestOwns(t *testing.T) {
	s := &OSSService{BucketName: "alumni", Endpoint: "https://oss-ap-southeast-1.aliyuncs.com"}
	assert.True(t, s.Owns("https://alumni.oss-ap-southeast-1.aliyuncs.com/blog/a.webp"))
	assert.False(t, s.Owns("https://images.example.org/a.webp"))

	s.PublicBase = "https://cdn.example.com"
	assert.True(t, s.Owns("https://cdn.example.com/blog/a.webp"))
}
