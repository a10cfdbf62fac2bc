package route

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/home/contents/model"
	"mwit_alumni_backend/internals/features/home/contents/service"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "content-route-test-secret"

func call(t *testing.T, app *fiber.App, method, path, body, auth string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestAdminWritesInvalidatePublicCache(t *testing.T) {
	configs.JWTSecret = testSecret
	db := testdb.New(t, &model.ContentBlock{}, &helperAuth.TokenBlacklist{})
	public, err := service.NewPublicContent(db, time.Hour)
	require.NoError(t, err)
	t.Cleanup(public.Close)

	app := fiber.New()
	ContentRoutes(app.Group("/api"), db, authMw.NewGuards(db, helperAuth.NewDBRoleResolver(db)), public)

	tok, err := helperAuth.IssueSession(&helperAuth.Session{UserID: uuid.New(), Email: "x@mwit.ac.th", Role: constants.RoleAdmin}, testSecret, time.Hour)
	require.NoError(t, err)
	admin := "Bearer " + tok

	_, body := call(t, app, http.MethodGet, "/api/content/public", "", "")
	assert.Empty(t, body["data"])

	code, body := call(t, app, http.MethodPost, "/api/content", `{"key":"Hero","title":"ยินดีต้อนรับ","body":"สมาคมศิษย์เก่า","data":{"cta":"donate"}}`, admin)
	require.Equal(t, fiber.StatusCreated, code)
	id := body["data"].(map[string]any)["id"].(string)

	code, _ = call(t, app, http.MethodPost, "/api/content", `{"key":"hero"}`, admin)
	assert.Equal(t, fiber.StatusConflict, code)

	_, body = call(t, app, http.MethodGet, "/api/content/public?keys=hero", "", "")
	require.Len(t, body["data"].([]any), 1)
	assert.Equal(t, "hero", body["data"].([]any)[0].(map[string]any)["key"])

	code, _ = call(t, app, http.MethodPut, "/api/content/"+id, `{"is_active":false}`, admin)
	require.Equal(t, fiber.StatusOK, code)
	_, body = call(t, app, http.MethodGet, "/api/content/public", "", "")
	assert.Empty(t, body["data"])

	code, _ = call(t, app, http.MethodDelete, "/api/content/"+id, "", bearer(t, constants.RoleUser))
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = call(t, app, http.MethodDelete, "/api/content/"+id, "", admin)
	assert.Equal(t, fiber.StatusOK, code)
}

func bearer(t *testing.T, role string) string {
	tok, err := helperAuth.IssueSession(&helperAuth.Session{UserID: uuid.New(), Email: "u@gmail.com", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}
