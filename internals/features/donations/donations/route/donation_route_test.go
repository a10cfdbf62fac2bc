package route

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/donations/donations/model"
	expenseModel "mwit_alumni_backend/internals/features/finance/expenses/model"
	statsModel "mwit_alumni_backend/internals/features/finance/stats/model"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	userModel "mwit_alumni_backend/internals/features/users/users/model"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

const testSecret = "donation-route-test-secret"

type harness struct {
	app *fiber.App
	db  *gorm.DB
	pub *helperEvents.MemoryPublisher
}

func newHarness(t *testing.T, captchaOK bool) *harness {
	configs.JWTSecret = testSecret
	db := testdb.New(t,
		&model.Donation{}, &expenseModel.Expense{}, &statsModel.YearlyStats{},
		&userModel.UserModel{}, &helperAuth.TokenBlacklist{},
	)
	pub := &helperEvents.MemoryPublisher{}

	app := fiber.New()
	g := authMw.NewGuards(db, helperAuth.NewDBRoleResolver(db))
	DonationRoutes(app.Group("/api"), db, g, Deps{
		Stats:     &statsService.StatsService{Loc: time.FixedZone("ICT", 7*60*60)},
		Publisher: pub,
		Turnstile: helperTurnstile.StaticVerifier{OK: captchaOK},
	})
	return &harness{app: app, db: db, pub: pub}
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := helperAuth.IssueSession(&helperAuth.Session{
		UserID: uuid.New(),
		Email:  role + "@mwit.ac.th",
		Name:   role,
		Role:   role,
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (h *harness) do(t *testing.T, method, path, body, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func (h *harness) seed(t *testing.T, status, consent string) model.Donation {
	t.Helper()
	gen := "รุ่น 9"
	tax := "1101700000000"
	d := model.Donation{
		DonationName:               "วิชัย",
		DonationEmail:              "wichai@gmail.com",
		DonationTaxID:              &tax,
		DonationGeneration:         &gen,
		DonationAmount:             decimal.NewFromInt(1000),
		DonationStatus:             status,
		DonationPublicationConsent: consent,
		CreatedAt:                  time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, h.db.Create(&d).Error)
	return d
}

func TestSubmitDonation(t *testing.T) {
	h := newHarness(t, true)

	code, body := h.do(t, http.MethodPost, "/api/donations",
		`{"donation_name":"ผู้บริจาค","donation_email":"Donor@Gmail.com","donation_amount":"1500.00","donation_generation":"รุ่น 3","donation_publication_consent":"name_only"}`, "")
	require.Equal(t, fiber.StatusCreated, code, body)

	var stored model.Donation
	require.NoError(t, h.db.First(&stored).Error)
	assert.Equal(t, constants.DonationPending, stored.DonationStatus)
	assert.Equal(t, "donor@gmail.com", stored.DonationEmail)
	assert.Equal(t, constants.ConsentNameOnly, stored.DonationPublicationConsent)
	assert.True(t, stored.DonationAmount.Equal(decimal.NewFromInt(1500)))

	assert.Eventually(t, func() bool {
		evs := h.pub.Events()
		return len(evs) == 1 && evs[0].Type == helperEvents.DonationSubmitted
	}, time.Second, 10*time.Millisecond)
}

func TestSubmitDonationValidation(t *testing.T) {
	h := newHarness(t, true)

	code, _ := h.do(t, http.MethodPost, "/api/donations",
		`{"donation_name":"x","donation_email":"x@gmail.com","donation_amount":"0"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = h.do(t, http.MethodPost, "/api/donations",
		`{"donation_name":"x","donation_email":"not-an-email","donation_amount":"10"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	// rounds to 0.00 in a numeric(14,2) column
	code, raw := h.do(t, http.MethodPost, "/api/donations",
		`{"donation_name":"x","donation_email":"x@gmail.com","donation_amount":"0.004"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, raw, "donation_amount")

	var n int64
	require.NoError(t, h.db.Model(&model.Donation{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmitDonationRequiresCaptcha(t *testing.T) {
	h := newHarness(t, false)

	code, _ := h.do(t, http.MethodPost, "/api/donations",
		`{"donation_name":"x","donation_email":"x@gmail.com","donation_amount":"10"}`, "")
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestPublicListIsMasked(t *testing.T) {
	h := newHarness(t, true)
	h.seed(t, constants.DonationApproved, constants.ConsentAnonymous)
	h.seed(t, constants.DonationPending, constants.ConsentFull)

	code, body := h.do(t, http.MethodGet, "/api/donations/public", "", "")
	require.Equal(t, fiber.StatusOK, code)

	var out struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, constants.AnonymousDonorLabel, out.Data[0]["donation_name"])
	assert.NotContains(t, body, "wichai@gmail.com")
	assert.NotContains(t, body, "1101700000000")
	assert.NotContains(t, body, "รุ่น 9")
}

func TestUpdateStatusRoleGate(t *testing.T) {
	h := newHarness(t, true)
	d := h.seed(t, constants.DonationPending, constants.ConsentFull)
	path := "/api/donations/" + d.DonationID.String() + "/status"
	payload := `{"status":"approved"}`

	code, _ := h.do(t, http.MethodPatch, path, payload, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = h.do(t, http.MethodPatch, path, payload, bearer(t, constants.RoleUser))
	assert.Equal(t, fiber.StatusForbidden, code)

	var stored model.Donation
	require.NoError(t, h.db.First(&stored, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, constants.DonationPending, stored.DonationStatus)
	var rows int64
	require.NoError(t, h.db.Model(&statsModel.YearlyStats{}).Count(&rows).Error)
	assert.Zero(t, rows)

	code, body := h.do(t, http.MethodPatch, path, payload, bearer(t, constants.RoleAdmin))
	require.Equal(t, fiber.StatusOK, code, body)

	require.NoError(t, h.db.First(&stored, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, constants.DonationApproved, stored.DonationStatus)

	var s statsModel.YearlyStats
	require.NoError(t, h.db.First(&s, "academic_year = ?", "2567").Error)
	assert.True(t, s.TotalDonations.Equal(decimal.NewFromInt(1000)))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := newHarness(t, true)
	d := h.seed(t, constants.DonationPending, constants.ConsentFull)

	code, _ := h.do(t, http.MethodPatch, "/api/donations/"+d.DonationID.String()+"/status",
		`{"status":"refunded"}`, bearer(t, constants.RoleAdmin))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = h.do(t, http.MethodPatch, "/api/donations/"+uuid.NewString()+"/status",
		`{"status":"approved"}`, bearer(t, constants.RoleAdmin))
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAdminListFilters(t *testing.T) {
	h := newHarness(t, true)
	h.seed(t, constants.DonationApproved, constants.ConsentFull)
	h.seed(t, constants.DonationPending, constants.ConsentFull)

	code, body := h.do(t, http.MethodGet, "/api/donations?status=pending", "", bearer(t, constants.RoleAdmin))
	require.Equal(t, fiber.StatusOK, code)
	var out struct {
		Data []model.Donation `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, constants.DonationPending, out.Data[0].DonationStatus)

	code, _ = h.do(t, http.MethodGet, "/api/donations/export?format=csv", "", bearer(t, constants.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = h.do(t, http.MethodGet, "/api/donations/export?format=pdf", "", bearer(t, constants.RoleAdmin))
	assert.Equal(t, fiber.StatusBadRequest, code)
}
