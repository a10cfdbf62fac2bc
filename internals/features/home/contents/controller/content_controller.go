package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/home/contents/dto"
	"mwit_alumni_backend/internals/features/home/contents/model"
	"mwit_alumni_backend/internals/features/home/contents/service"
	helper "mwit_alumni_backend/internals/helpers"
)

const (
	msgContentNotFound = "ไม่พบเนื้อหา"
	msgKeyTaken        = "key นี้ถูกใช้แล้ว"
)

type ContentController struct {
	DB     *gorm.DB
	Public *service.PublicContent
}

func NewContentController(db *gorm.DB, public *service.PublicContent) *ContentController {
	return &ContentController{DB: db, Public: public}
}

// GET /api/content/public?keys=hero,contact
func (ctrl *ContentController) PublicList(c *fiber.Ctx) error {
	var keys []string
	for _, k := range strings.Split(c.Query("keys", c.Query("key")), ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys = append(keys, k)
		}
	}
	list, err := ctrl.Public.Active(c.UserContext(), keys...)
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	return helper.JsonList(c, "ok", list, nil)
}

// GET /api/content
func (ctrl *ContentController) List(c *fiber.Ctx) error {
	var list []model.ContentBlock
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("sort_order ASC").Order("key ASC").
		Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, nil)
}

// POST /api/content
func (ctrl *ContentController) Create(c *fiber.Ctx) error {
	var body dto.CreateContentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	block := body.ToModel(helper.GetOptionalUserID(c))
	if err := ctrl.DB.WithContext(c.UserContext()).Create(block).Error; err != nil {
		return helper.FromDBError(c, err, "", msgKeyTaken)
	}
	ctrl.Public.Invalidate()
	return helper.JsonCreated(c, "เพิ่มเนื้อหาเรียบร้อย", block)
}

// PUT /api/content/:id
func (ctrl *ContentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateContentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	db := ctrl.DB.WithContext(c.UserContext())
	var block model.ContentBlock
	if err := db.First(&block, "id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgContentNotFound, "")
	}
	if err := db.Model(&block).Updates(body.Changes(helper.GetOptionalUserID(c))).Error; err != nil {
		return helper.FromDBError(c, err, msgContentNotFound, msgKeyTaken)
	}
	if err := db.First(&block, "id = ?", id).Error; err != nil {
		return helper.FromError(c, err)
	}
	ctrl.Public.Invalidate()
	return helper.JsonUpdated(c, "แก้ไขเนื้อหาเรียบร้อย", block)
}

// DELETE /api/content/:id
func (ctrl *ContentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ContentBlock{}, "id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgContentNotFound)
	}
	ctrl.Public.Invalidate()
	return helper.JsonDeleted(c, "ลบเนื้อหาเรียบร้อย", fiber.Map{"id": id})
}
