package route

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "upload-route-test-secret"

type fakeUploader struct {
	mu   sync.Mutex
	dirs []string
}

func (f *fakeUploader) UploadAsWebP(_ context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs = append(f.dirs, dir)
	return "https://cdn.example.com/" + dir + "/" + fh.Filename + ".webp", nil
}

func (f *fakeUploader) MoveToTrash(context.Context, string) error { return nil }

func setup(t *testing.T, up helperOSS.Uploader) *fiber.App {
	configs.JWTSecret = testSecret
	db := testdb.New(t, &helperAuth.TokenBlacklist{})
	app := fiber.New()
	UploadRoutes(app.Group("/api"), authMw.Guards{
		Auth:     authMw.AuthRequired(db),
		Resolver: helperAuth.NewDBRoleResolver(db),
	}, up)
	return app
}

func upload(t *testing.T, app *fiber.App, role string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/blog", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	if role != "" {
		tok, err := helperAuth.IssueSession(&helperAuth.Session{UserID: uuid.New(), Email: "x@mwit.ac.th", Role: role}, testSecret, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestBlogUpload(t *testing.T) {
	up := &fakeUploader{}
	app := setup(t, up)

	code, _ := upload(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = upload(t, app, constants.RoleUser)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Empty(t, up.dirs)

	code, body := upload(t, app, constants.RoleAdmin)
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "https://cdn.example.com/blog/cover.png.webp", body["data"].(map[string]any)["url"])
	assert.Equal(t, []string{"blog"}, up.dirs)
}

func TestBlogUploadWithoutStorage(t *testing.T) {
	app := setup(t, nil)
	code, _ := upload(t, app, constants.RoleAdmin)
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
}
