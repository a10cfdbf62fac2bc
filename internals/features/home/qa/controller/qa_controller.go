package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/home/qa/dto"
	"mwit_alumni_backend/internals/features/home/qa/model"
	helper "mwit_alumni_backend/internals/helpers"
)

const msgQANotFound = "ไม่พบคำถาม"

type QAController struct {
	DB *gorm.DB
}

func NewQAController(db *gorm.DB) *QAController {
	return &QAController{DB: db}
}

// GET /api/qa/public?category=
func (ctrl *QAController) PublicList(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Where("is_published = ?", true)
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var list []model.QAItem
	if err := q.Order("sort_order ASC").Order("created_at ASC").Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, nil)
}

// GET /api/qa
func (ctrl *QAController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "sort_order", "asc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{
		"sort_order": "sort_order",
		"created_at": "created_at",
	}, "sort_order")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.QAItem{})
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(question) LIKE ? OR LOWER(answer) LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.QAItem
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// POST /api/qa
func (ctrl *QAController) Create(c *fiber.Ctx) error {
	var body dto.CreateQARequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	item := body.ToModel(helper.GetOptionalUserID(c))
	if err := ctrl.DB.WithContext(c.UserContext()).Create(item).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "เพิ่มคำถามเรียบร้อย", item)
}

// PUT /api/qa/:id
func (ctrl *QAController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateQARequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var item model.QAItem
	db := ctrl.DB.WithContext(c.UserContext())
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgQANotFound, "")
	}
	if changes := body.Changes(); len(changes) > 0 {
		if err := db.Model(&item).Updates(changes).Error; err != nil {
			return helper.FromError(c, err)
		}
	}
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "แก้ไขคำถามเรียบร้อย", item)
}

// DELETE /api/qa/:id
func (ctrl *QAController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.QAItem{}, "id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgQANotFound)
	}
	return helper.JsonDeleted(c, "ลบคำถามเรียบร้อย", fiber.Map{"id": id})
}
