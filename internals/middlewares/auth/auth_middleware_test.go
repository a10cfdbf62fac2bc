package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
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
)

const testSecret = "middleware-test-secret"

func issue(t *testing.T, role string) string {
	tok, err := helperAuth.IssueSession(&helperAuth.Session{UserID: uuid.New(), Email: "a@gmail.com", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestGuards(t *testing.T) {
	configs.JWTSecret = testSecret
	db := testdb.New(t, &helperAuth.TokenBlacklist{})
	g := NewGuards(db, helperAuth.NewDBRoleResolver(db))

	hits := 0
	app := fiber.New()
	app.Get("/admin", g.Auth, g.Admin("ทดสอบ"), func(c *fiber.Ctx) error {
		hits++
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/optional", g.Optional, func(c *fiber.Ctx) error {
		if helperAuth.SessionFromCtx(c) == nil {
			return c.SendString("anon")
		}
		return c.SendString("user")
	})

	do := func(path, tok string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if tok != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnauthorized, do("/admin", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do("/admin", "garbage"))
	assert.Equal(t, fiber.StatusForbidden, do("/admin", issue(t, constants.RoleUser)))
	assert.Zero(t, hits)

	admin := issue(t, constants.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, do("/admin", admin))
	assert.Equal(t, 1, hits)

	require.NoError(t, helperAuth.Revoke(context.Background(), db, admin, testSecret, time.Now().Add(time.Hour)))
	assert.Equal(t, fiber.StatusUnauthorized, do("/admin", admin))
	assert.Equal(t, 1, hits)

	assert.Equal(t, fiber.StatusOK, do("/optional", "garbage"))
}
