package route

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/shortlinks/model"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "short-link-test-secret"

func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	configs.JWTSecret = testSecret
	configs.SiteURL = "https://alumni.example.org/"
	db := testdb.New(t, &model.ShortLink{}, &helperAuth.TokenBlacklist{})

	app := fiber.New()
	ShortLinkRedirectRoutes(app, db)
	ShortLinkAdminRoutes(app.Group("/api"), db, authMw.Guards{
		Auth:     authMw.AuthRequired(db),
		Optional: authMw.OptionalAuth(db),
		Resolver: helperAuth.NewDBRoleResolver(db),
	})
	return app, db
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := helperAuth.IssueSession(&helperAuth.Session{
		UserID: uuid.New(),
		Email:  role + "@mwit.ac.th",
		Role:   role,
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func send(t *testing.T, app *fiber.App, method, path, body, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRedirect(t *testing.T) {
	app, db := newApp(t)
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Create(&model.ShortLink{ShortCode: "live", TargetURL: "https://forms.example.org/x", Active: true}).Error)
	require.NoError(t, db.Create(&model.ShortLink{ShortCode: "gone", TargetURL: "https://forms.example.org/y", Active: true, ExpiresAt: &past}).Error)

	resp := send(t, app, http.MethodGet, "/s/live", "", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://forms.example.org/x", resp.Header.Get(fiber.HeaderLocation))

	resp = send(t, app, http.MethodGet, "/s/gone", "", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://alumni.example.org/", resp.Header.Get(fiber.HeaderLocation))

	resp = send(t, app, http.MethodGet, "/s/unknown", "", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://alumni.example.org/", resp.Header.Get(fiber.HeaderLocation))
}

func TestMutationsNeedAdmin(t *testing.T) {
	app, db := newApp(t)
	existing := model.ShortLink{ShortCode: "keep", TargetURL: "https://example.org", Active: true}
	require.NoError(t, db.Create(&existing).Error)
	id := existing.ShortLinkID.String()

	body := `{"target_url":"https://example.org/new","short_code":"newcode"}`
	for _, auth := range []string{"", token(t, constants.RoleUser)} {
		want := fiber.StatusForbidden
		if auth == "" {
			want = fiber.StatusUnauthorized
		}
		assert.Equal(t, want, send(t, app, http.MethodPost, "/api/short-links", body, auth).StatusCode)
		assert.Equal(t, want, send(t, app, http.MethodPut, "/api/short-links/"+id, `{"active":false}`, auth).StatusCode)
		assert.Equal(t, want, send(t, app, http.MethodDelete, "/api/short-links/"+id, "", auth).StatusCode)
	}

	var all []model.ShortLink
	require.NoError(t, db.Find(&all).Error)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active)
	assert.Equal(t, "keep", all[0].ShortCode)
}

func TestCreateCustomAndGenerated(t *testing.T) {
	app, db := newApp(t)
	admin := token(t, constants.RoleAdmin)

	resp := send(t, app, http.MethodPost, "/api/short-links", `{"target_url":"https://example.org/a","short_code":"reunion-2025"}`, admin)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/short-links", `{"target_url":"https://example.org/b","short_code":"reunion-2025"}`, admin)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/short-links", `{"target_url":"https://example.org/c","short_code":"a b"}`, admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/short-links", `{"target_url":"https://example.org/d"}`, admin)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var generated model.ShortLink
	require.NoError(t, db.First(&generated, "target_url = ?", "https://example.org/d").Error)
	assert.Len(t, generated.ShortCode, 6)
	assert.True(t, generated.Active)
	assert.Zero(t, generated.Clicks)
}
