package controller

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/shortlinks/dto"
	"mwit_alumni_backend/internals/features/shortlinks/model"
	"mwit_alumni_backend/internals/features/shortlinks/service"
	helper "mwit_alumni_backend/internals/helpers"
	helperMetrics "mwit_alumni_backend/internals/helpers/metrics"
)

const (
	msgShortLinkNotFound = "ไม่พบลิงก์สั้น"
	msgCodeTaken         = "รหัสลิงก์นี้ถูกใช้แล้ว กรุณาเลือกรหัสอื่น"
	msgCodeExhausted     = "ไม่สามารถสร้างรหัสลิงก์ได้ กรุณาลองใหม่อีกครั้ง"
)

type ShortLinkController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewShortLinkController(db *gorm.DB) *ShortLinkController {
	return &ShortLinkController{DB: db, Now: time.Now}
}

// GET /s/:code
func (ctrl *ShortLinkController) Redirect(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	res, err := service.Resolve(c.UserContext(), ctrl.DB, code, ctrl.Now().UTC())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "short link lookup failed", "code", code, "err", err)
		return c.Redirect(configs.SiteURL, fiber.StatusFound)
	}
	helperMetrics.ShortlinkRedirects.WithLabelValues(res.Outcome).Inc()
	if res.Outcome != service.OutcomeHit {
		return c.Redirect(configs.SiteURL, fiber.StatusFound)
	}
	return c.Redirect(res.Target, fiber.StatusFound)
}

// GET /api/short-links?q=&active=
func (ctrl *ShortLinkController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{
		"created_at": "created_at",
		"clicks":     "clicks",
		"short_code": "short_code",
	}, "created_at")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ShortLink{})
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(short_code) LIKE ? OR LOWER(target_url) LIKE ? OR LOWER(title) LIKE ?", like, like, like)
	}
	switch strings.ToLower(c.Query("active")) {
	case "true", "1":
		q = q.Where("active = ?", true)
	case "false", "0":
		q = q.Where("active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.ShortLink
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// GET /api/short-links/:id
func (ctrl *ShortLinkController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var link model.ShortLink
	if err := ctrl.DB.WithContext(c.UserContext()).First(&link, "short_link_id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgShortLinkNotFound, "")
	}
	return helper.JsonOK(c, "ok", link)
}

// POST /api/short-links
func (ctrl *ShortLinkController) Create(c *fiber.Ctx) error {
	var body dto.CreateShortLinkRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	ctx := c.UserContext()
	var code string
	if body.ShortCode != nil {
		code = *body.ShortCode
		taken, err := service.CodeTaken(ctx, ctrl.DB, code)
		if err != nil {
			return helper.FromError(c, err)
		}
		if taken {
			return helper.JsonError(c, fiber.StatusConflict, msgCodeTaken)
		}
	} else {
		generated, err := service.GenerateCode(ctx, ctrl.DB, service.DefaultCodeLength)
		if errors.Is(err, service.ErrCodeSpaceExhausted) {
			slog.ErrorContext(ctx, "short code generation exhausted", "attempts", service.MaxCodeAttempts)
			return helper.JsonError(c, fiber.StatusInternalServerError, msgCodeExhausted)
		}
		if err != nil {
			return helper.FromError(c, err)
		}
		code = generated
	}

	link := body.ToModel(code, helper.GetOptionalUserID(c))
	if err := ctrl.DB.WithContext(ctx).Create(link).Error; err != nil {
		// lost a race with another insert of the same code
		return helper.FromDBError(c, err, "", msgCodeTaken)
	}
	return helper.JsonCreated(c, "สร้างลิงก์สั้นเรียบร้อย", link)
}

// PUT /api/short-links/:id
func (ctrl *ShortLinkController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateShortLinkRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var link model.ShortLink
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&link, "short_link_id = ?", id).Error; err != nil {
			return err
		}
		changes := body.Changes()
		if code, ok := changes["short_code"].(string); ok && code != link.ShortCode {
			var n int64
			if err := tx.Model(&model.ShortLink{}).Where("short_code = ?", code).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return gorm.ErrDuplicatedKey
			}
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&link).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&link, "short_link_id = ?", id).Error
	})
	if err != nil {
		return helper.FromDBError(c, err, msgShortLinkNotFound, msgCodeTaken)
	}
	return helper.JsonUpdated(c, "แก้ไขลิงก์สั้นเรียบร้อย", link)
}

// DELETE /api/short-links/:id
func (ctrl *ShortLinkController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ShortLink{}, "short_link_id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgShortLinkNotFound)
	}
	return helper.JsonDeleted(c, "ลบลิงก์สั้นเรียบร้อย", fiber.Map{"short_link_id": id})
}
