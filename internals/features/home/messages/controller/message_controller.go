package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/home/messages/dto"
	"mwit_alumni_backend/internals/features/home/messages/model"
	helper "mwit_alumni_backend/internals/helpers"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
)

const msgMessageNotFound = "ไม่พบข้อความ"

type MessageController struct {
	DB        *gorm.DB
	Publisher helperEvents.Publisher
}

func NewMessageController(db *gorm.DB, pub helperEvents.Publisher) *MessageController {
	return &MessageController{DB: db, Publisher: pub}
}

// POST /api/messages
func (ctrl *MessageController) Create(c *fiber.Ctx) error {
	var body dto.CreateMessageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	msg := body.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(msg).Error; err != nil {
		return helper.FromError(c, err)
	}
	helperEvents.PublishAsync(ctrl.Publisher, helperEvents.NewEvent(helperEvents.MessageReceived, fiber.Map{
		"message_id": msg.ID,
		"subject":    msg.Subject,
	}))
	return helper.JsonCreated(c, "ส่งข้อความเรียบร้อย ขอบคุณที่ติดต่อเรา", fiber.Map{"id": msg.ID})
}

// GET /api/messages?is_read=&q=
func (ctrl *MessageController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{"created_at": "created_at"}, "created_at")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Message{})
	switch strings.ToLower(c.Query("is_read")) {
	case "true", "1":
		q = q.Where("is_read = ?", true)
	case "false", "0":
		q = q.Where("is_read = ?", false)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.Message
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}

	var unread int64
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.Message{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		return helper.FromError(c, err)
	}
	c.Set("X-Unread-Count", strconv.FormatInt(unread, 10))
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

func (ctrl *MessageController) update(c *fiber.Ctx, changes map[string]any, okMsg string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := ctrl.DB.WithContext(c.UserContext())
	res := db.Model(&model.Message{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgMessageNotFound)
	}
	var msg model.Message
	if err := db.First(&msg, "id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgMessageNotFound, "")
	}
	return helper.JsonUpdated(c, okMsg, msg)
}

// PATCH /api/messages/:id/read  body {is_read} (default true)
func (ctrl *MessageController) MarkRead(c *fiber.Ctx) error {
	var body dto.MarkReadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
		}
	}
	read := body.IsRead == nil || *body.IsRead
	changes := map[string]any{"is_read": read, "read_at": nil}
	if read {
		changes["read_at"] = time.Now().UTC()
	}
	return ctrl.update(c, changes, "อัปเดตสถานะข้อความเรียบร้อย")
}

// PATCH /api/messages/:id/note
func (ctrl *MessageController) Note(c *fiber.Ctx) error {
	var body dto.NoteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	var note any
	if v := strings.TrimSpace(body.AdminNote); v != "" {
		note = v
	}
	return ctrl.update(c, map[string]any{"admin_note": note}, "บันทึกหมายเหตุเรียบร้อย")
}

// DELETE /api/messages/:id
func (ctrl *MessageController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.Message{}, "id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgMessageNotFound)
	}
	return helper.JsonDeleted(c, "ลบข้อความเรียบร้อย", fiber.Map{"id": id})
}
