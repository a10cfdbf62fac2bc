package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"

	"mwit_alumni_backend/internals/configs"
	helper "mwit_alumni_backend/internals/helpers"
)

const (
	MaxUploadSize = int64(5 * 1024 * 1024)
	TrashPrefix   = "trash/"
)

// Uploader is what controllers depend on; OSSService implements it.
type Uploader interface {
	UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error)
	MoveToTrash(ctx context.Context, publicURL string) error
}

type OSSService struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string
}

var _ Uploader = (*OSSService)(nil)

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" || strings.HasPrefix(ep, "http://") || strings.HasPrefix(ep, "https://") {
		return ep
	}
	return "https://" + ep
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := normalizeEndpoint(configs.GetEnv("ALI_OSS_ENDPOINT"))
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	sts := configs.GetEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var opts []oss.ClientOption
	if sts != "" {
		opts = append(opts, oss.SecurityToken(sts))
	}
	client, err := oss.New(endpoint, ak, sk, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 {
			slog.Warn("oss: skip bucket location check", "bucket", bucketName, "err", err)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		slog.Info("oss: bucket ready", "bucket", bucketName, "location", loc)
	}

	return &OSSService{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(configs.GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// UploadAsWebP re-encodes the image to WebP and stores it under dir.
// Returns the public URL.
func (s *OSSService) UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "ไม่พบไฟล์")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "ขนาดไฟล์ต้องไม่เกิน 5MB")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, defaultWebPOptionsFromEnv())
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "รองรับเฉพาะไฟล์ jpg, png หรือ webp")
		}
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := BuildObjectKey(s.Prefix, dir, base+".webp", time.Now())

	err = s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "oss: put object failed", "key", key, "err", err)
		return "", fiber.NewError(fiber.StatusBadGateway, "อัปโหลดไฟล์ไม่สำเร็จ")
	}
	return s.PublicURL(key), nil
}

// MoveToTrash copies the object under trash/YYYY/MM/DD/ and removes the original.
// The trash reaper deletes it later.
func (s *OSSService) MoveToTrash(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return nil
	}
	if !s.Owns(publicURL) {
		return nil
	}
	srcKey, err := s.KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if strings.HasPrefix(srcKey, TrashPrefix) {
		return nil
	}
	dstKey := TrashKey(srcKey, time.Now())
	if _, err := s.Bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("copy %q -> %q: %w", srcKey, dstKey, err)
	}
	if err := s.Bucket.DeleteObject(srcKey, oss.WithContext(ctx)); err != nil {
		slog.WarnContext(ctx, "oss: delete after trash copy failed", "key", srcKey, "err", err)
	}
	return nil
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

// Owns reports whether publicURL points into this bucket.
func (s *OSSService) Owns(publicURL string) bool {
	if s.PublicBase != "" && strings.HasPrefix(publicURL, s.PublicBase+"/") {
		return true
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return strings.EqualFold(u.Host, s.BucketName+"."+host)
}

func (s *OSSService) KeyFromPublicURL(publicURL string) (string, error) {
	if s.PublicBase != "" && strings.HasPrefix(publicURL, s.PublicBase+"/") {
		return strings.TrimPrefix(publicURL, s.PublicBase+"/"), nil
	}
	return KeyFromPublicURL(publicURL)
}

/* =======================================================================
   Key utils
======================================================================= */

func KeyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("empty key from URL")
	}
	return key, nil
}

// TrashKey maps "blog/a.webp" to "trash/2024/05/01/153000__a.webp".
func TrashKey(srcKey string, now time.Time) string {
	return path.Join(
		strings.TrimSuffix(TrashPrefix, "/"),
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("%s__%s", now.Format("150405"), path.Base(srcKey)),
	)
}

func BuildObjectKey(prefix, dir, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := helper.Slugify(strings.TrimSuffix(filename, filepath.Ext(filename)), 60)
	if base == "" {
		base = "file"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", base, now.Format("20060102_150405"), randHex(3), ext))
	return strings.Join(parts, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// TrashAsync moves replaced objects to the trash prefix without blocking the request.
func TrashAsync(up Uploader, urls ...string) {
	if up == nil {
		return
	}
	pending := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			pending = append(pending, u)
		}
	}
	if len(pending) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, u := range pending {
			if err := up.MoveToTrash(ctx, u); err != nil {
				slog.Warn("oss: move to trash failed", "url", u, "err", err)
			}
		}
	}()
}

// FormImage returns the first file found under one of the given field names.
func FormImage(c *fiber.Ctx, fields ...string) *multipart.FileHeader {
	for _, f := range fields {
		if fh, err := c.FormFile(f); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
