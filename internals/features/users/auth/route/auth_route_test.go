package route

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/users/auth/service"
	"mwit_alumni_backend/internals/features/users/users/model"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "auth-route-test-secret"

// fakeVerifier treats the id token as the email.
type fakeVerifier struct{}

func (fakeVerifier) Verify(idToken string) (*service.GoogleIdentity, error) {
	if !strings.Contains(idToken, "@") {
		return nil, errors.New("bad token")
	}
	return &service.GoogleIdentity{Sub: "sub-" + idToken, Email: strings.ToLower(idToken), Name: "Tester"}, nil
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	configs.JWTSecret = testSecret
	configs.SessionTTL = time.Hour
	configs.AllowedEmailDomains = []string{"mwit.ac.th", "gmail.com"}
	configs.AdminEmails = []string{"boss@mwit.ac.th"}

	db := testdb.New(t, &model.UserModel{}, &helperAuth.TokenBlacklist{})
	app := fiber.New()
	AuthRoutes(app.Group("/api"), db, authMw.NewGuards(db, helperAuth.NewDBRoleResolver(db)), fakeVerifier{})
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, body, tok string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if tok != "" {
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

func login(t *testing.T, app *fiber.App, email string) (int, string) {
	code, body := call(t, app, http.MethodPost, "/api/auth/google", `{"id_token":"`+email+`"}`, "")
	if code != fiber.StatusOK {
		return code, ""
	}
	return code, body["data"].(map[string]any)["token"].(string)
}

func TestLoginCreatesThenRefreshes(t *testing.T) {
	app, db := setup(t)

	code, tok := login(t, app, "ploy@gmail.com")
	require.Equal(t, fiber.StatusOK, code)
	require.NotEmpty(t, tok)

	var u model.UserModel
	require.NoError(t, db.First(&u, "email = ?", "ploy@gmail.com").Error)
	assert.Equal(t, constants.RoleUser, u.Role)
	require.NotNil(t, u.LastLoginAt)

	// a role granted by an admin survives the next login
	require.NoError(t, db.Model(&u).Update("role", constants.RoleAdmin).Error)
	code, _ = login(t, app, "ploy@gmail.com")
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, db.First(&u, "id = ?", u.ID).Error)
	assert.Equal(t, constants.RoleAdmin, u.Role)

	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLoginRules(t *testing.T) {
	app, db := setup(t)

	code, _ := login(t, app, "someone@yahoo.com")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = login(t, app, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = login(t, app, "boss@mwit.ac.th")
	require.Equal(t, fiber.StatusOK, code)
	var u model.UserModel
	require.NoError(t, db.First(&u, "email = ?", "boss@mwit.ac.th").Error)
	assert.Equal(t, constants.RoleAdmin, u.Role)
}

func TestMeAndLogout(t *testing.T) {
	app, _ := setup(t)
	_, tok := login(t, app, "mint@mwit.ac.th")

	code, body := call(t, app, http.MethodGet, "/api/auth/me", "", tok)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "mint@mwit.ac.th", body["data"].(map[string]any)["email"])

	code, _ = call(t, app, http.MethodPost, "/api/auth/logout", "", tok)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = call(t, app, http.MethodGet, "/api/auth/me", "", tok)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}
