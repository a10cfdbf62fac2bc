package controller

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/donations/donations/dto"
	"mwit_alumni_backend/internals/features/donations/donations/model"
	"mwit_alumni_backend/internals/features/donations/donations/service"
	helper "mwit_alumni_backend/internals/helpers"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperMetrics "mwit_alumni_backend/internals/helpers/metrics"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
)

const (
	msgDonationNotFound = "ไม่พบรายการบริจาค"
	msgAmountPositive   = "จำนวนเงินต้องมากกว่า 0"
	msgInvalidDate      = "รูปแบบวันที่โอนไม่ถูกต้อง (YYYY-MM-DD)"
	slipDir             = "donations/slips"
)

type DonationController struct {
	DB        *gorm.DB
	Service   *service.DonationService
	Uploader  helperOSS.Uploader
	Publisher helperEvents.Publisher
}

func NewDonationController(db *gorm.DB, svc *service.DonationService, up helperOSS.Uploader, pub helperEvents.Publisher) *DonationController {
	return &DonationController{DB: db, Service: svc, Uploader: up, Publisher: pub}
}

func optionalForm(c *fiber.Ctx, key string) *string {
	v := c.FormValue(key)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// parseCreate reads the public form from JSON or multipart/form-data.
func parseCreate(c *fiber.Ctx) (*dto.CreateDonationRequest, error) {
	var body dto.CreateDonationRequest
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(ct, fiber.MIMEMultipartForm) && !strings.HasPrefix(ct, fiber.MIMEApplicationForm) {
		if err := c.BodyParser(&body); err != nil {
			return nil, err
		}
		return &body, nil
	}

	body.DonationName = c.FormValue("donation_name")
	body.DonationEmail = c.FormValue("donation_email")
	body.DonationPhone = optionalForm(c, "donation_phone")
	body.DonationTaxID = optionalForm(c, "donation_tax_id")
	body.DonationAddress = optionalForm(c, "donation_address")
	body.DonationGeneration = optionalForm(c, "donation_generation")
	body.DonationMessage = optionalForm(c, "donation_message")
	body.DonationTransferDate = optionalForm(c, "donation_transfer_date")
	body.DonationPublicationConsent = c.FormValue("donation_publication_consent")

	amount, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("donation_amount")))
	if err != nil {
		return nil, err
	}
	body.DonationAmount = amount
	return &body, nil
}

// POST /api/donations
func (ctrl *DonationController) Create(c *fiber.Ctx) error {
	body, err := parseCreate(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if !body.DonationAmount.GreaterThan(decimal.Zero) {
		return helper.JsonValidationError(c, map[string]string{"donation_amount": msgAmountPositive})
	}

	var transferDate *time.Time
	if body.DonationTransferDate != nil {
		t, err := dto.ParseTransferDate(*body.DonationTransferDate, configs.AppLocation())
		if err != nil {
			return helper.JsonValidationError(c, map[string]string{"donation_transfer_date": msgInvalidDate})
		}
		transferDate = &t
	}

	// The slip is stored before the row; a failed insert leaves an orphaned object.
	var slipURL *string
	if slip := helperOSS.FormImage(c, "slip", "donation_slip"); slip != nil {
		if ctrl.Uploader == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, constants.MsgStorageUnavailable)
		}
		url, err := ctrl.Uploader.UploadAsWebP(c.UserContext(), slip, slipDir)
		if err != nil {
			return helper.FromError(c, err)
		}
		slipURL = &url
	}

	d := body.ToModel(transferDate, slipURL)

	if err := ctrl.DB.WithContext(c.UserContext()).Create(d).Error; err != nil {
		return helper.FromError(c, err)
	}

	helperMetrics.DonationsSubmitted.Inc()
	helperEvents.PublishAsync(ctrl.Publisher, helperEvents.NewEvent(helperEvents.DonationSubmitted, fiber.Map{
		"donation_id": d.DonationID,
		"amount":      d.DonationAmount,
		"generation":  d.DonationGeneration,
		"has_slip":    d.DonationSlipURL != nil,
	}))

	return helper.JsonCreated(c, "ส่งข้อมูลการบริจาคเรียบร้อย ขอบคุณที่ร่วมสนับสนุน", dto.CreateDonationResponse{
		DonationID:     d.DonationID,
		DonationStatus: d.DonationStatus,
		DonationAmount: d.DonationAmount,
		CreatedAt:      d.CreatedAt,
	})
}

// GET /api/donations/public
func (ctrl *DonationController) PublicList(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.OrderClause(map[string]string{
		"created_at":      "created_at",
		"donation_amount": "donation_amount",
	}, "created_at")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Donation{}).
		Where("donation_status = ?", constants.DonationApproved)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.Donation
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToPublicList(list), p.Pagination(total, len(list)))
}

func (ctrl *DonationController) adminQuery(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Donation{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		if !model.IsValidStatus(s) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "สถานะไม่ถูกต้อง")
		}
		q = q.Where("donation_status = ?", s)
	}
	if g := strings.TrimSpace(c.Query("generation")); g != "" {
		q = q.Where("donation_generation = ?", g)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(donation_name) LIKE ? OR LOWER(donation_email) LIKE ?", like, like)
	}
	return q, nil
}

// GET /api/donations?status=&q=&generation=
func (ctrl *DonationController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{
		"created_at":      "created_at",
		"donation_amount": "donation_amount",
		"donation_status": "donation_status",
	}, "created_at")

	q, err := ctrl.adminQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.Donation
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// GET /api/donations/:id
func (ctrl *DonationController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var d model.Donation
	if err := ctrl.DB.WithContext(c.UserContext()).First(&d, "donation_id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgDonationNotFound, "")
	}
	return helper.JsonOK(c, "ok", d)
}

// PATCH /api/donations/:id/status
func (ctrl *DonationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateDonationStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Status = strings.ToLower(strings.TrimSpace(body.Status))
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	change, err := ctrl.Service.ChangeStatus(c.UserContext(), id, body.Status, helper.GetOptionalUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, msgDonationNotFound)
		}
		return helper.FromError(c, err)
	}

	helperMetrics.DonationStatusChanges.WithLabelValues(change.NewStatus).Inc()
	helperEvents.PublishAsync(ctrl.Publisher, helperEvents.NewEvent(helperEvents.DonationStatusChanged, fiber.Map{
		"donation_id":   id,
		"from":          change.OldStatus,
		"to":            change.NewStatus,
		"academic_year": change.Year,
	}))

	return helper.JsonUpdated(c, "อัปเดตสถานะการบริจาคเรียบร้อย", change.Donation)
}

// GET /api/donations/export?format=csv|xlsx (same filters as List, no paging)
func (ctrl *DonationController) Export(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Query("format", service.ExportCSV)))
	if format != service.ExportCSV && format != service.ExportXLSX {
		return helper.JsonError(c, fiber.StatusBadRequest, "รูปแบบไฟล์ต้องเป็น csv หรือ xlsx")
	}

	q, err := ctrl.adminQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var list []model.Donation
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}

	loc := configs.AppLocation()
	name := "donations-" + time.Now().In(loc).Format("20060102-150405")

	if format == service.ExportXLSX {
		buf, err := service.BuildXLSX(list, loc)
		if err != nil {
			return helper.FromError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.xlsx"`)
		return c.Send(buf.Bytes())
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, list, loc); err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.csv"`)
	return c.Send(buf.Bytes())
}
