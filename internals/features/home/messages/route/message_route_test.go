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
	"mwit_alumni_backend/internals/features/home/messages/model"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "message-route-test-secret"

func setup(t *testing.T) (*fiber.App, *gorm.DB, *helperEvents.MemoryPublisher) {
	configs.JWTSecret = testSecret
	db := testdb.New(t, &model.Message{}, &helperAuth.TokenBlacklist{})
	pub := &helperEvents.MemoryPublisher{}
	app := fiber.New()
	MessageRoutes(app.Group("/api"), db, authMw.Guards{
		Auth:     authMw.AuthRequired(db),
		Resolver: helperAuth.NewDBRoleResolver(db),
	}, pub, helperTurnstile.StaticVerifier{OK: true})
	return app, db, pub
}

func admin(t *testing.T) string {
	tok, err := helperAuth.IssueSession(&helperAuth.Session{UserID: uuid.New(), Email: "admin@mwit.ac.th", Role: constants.RoleAdmin}, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func request(t *testing.T, app *fiber.App, method, path, body, auth string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestMessageLifecycle(t *testing.T) {
	app, db, pub := setup(t)

	code := request(t, app, http.MethodPost, "/api/messages",
		`{"name":"Nok","email":"NOK@gmail.com","subject":"สอบถาม","body":"อยากทราบรายละเอียดงานคืนสู่เหย้า"}`, "")
	require.Equal(t, fiber.StatusCreated, code)

	var msg model.Message
	require.NoError(t, db.First(&msg).Error)
	assert.Equal(t, "nok@gmail.com", msg.Email)
	assert.False(t, msg.IsRead)
	assert.Eventually(t, func() bool { return len(pub.Events()) == 1 }, time.Second, 10*time.Millisecond)

	id := msg.ID.String()
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, http.MethodPatch, "/api/messages/"+id+"/read", "", ""))

	require.Equal(t, fiber.StatusOK, request(t, app, http.MethodPatch, "/api/messages/"+id+"/read", "", admin(t)))
	require.NoError(t, db.First(&msg, "id = ?", msg.ID).Error)
	assert.True(t, msg.IsRead)
	assert.NotNil(t, msg.ReadAt)

	require.Equal(t, fiber.StatusOK, request(t, app, http.MethodPatch, "/api/messages/"+id+"/read", `{"is_read":false}`, admin(t)))
	require.NoError(t, db.First(&msg, "id = ?", msg.ID).Error)
	assert.False(t, msg.IsRead)
	assert.Nil(t, msg.ReadAt)

	require.Equal(t, fiber.StatusOK, request(t, app, http.MethodPatch, "/api/messages/"+id+"/note", `{"admin_note":"โทรกลับแล้ว"}`, admin(t)))
	require.NoError(t, db.First(&msg, "id = ?", msg.ID).Error)
	require.NotNil(t, msg.AdminNote)
	assert.Equal(t, "โทรกลับแล้ว", *msg.AdminNote)

	assert.Equal(t, fiber.StatusOK, request(t, app, http.MethodDelete, "/api/messages/"+id, "", admin(t)))
	assert.Equal(t, fiber.StatusNotFound, request(t, app, http.MethodDelete, "/api/messages/"+id, "", admin(t)))
}

func TestMessageValidation(t *testing.T) {
	app, db, _ := setup(t)

	assert.Equal(t, fiber.StatusBadRequest, request(t, app, http.MethodPost, "/api/messages", `{"name":"x","email":"bad","body":"hi"}`, ""))
	var n int64
	require.NoError(t, db.Model(&model.Message{}).Count(&n).Error)
	assert.Zero(t, n)
}
