package controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/users/users/dto"
	"mwit_alumni_backend/internals/features/users/users/model"
	helper "mwit_alumni_backend/internals/helpers"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

const msgUserNotFound = "ไม่พบผู้ใช้"

type UsersController struct {
	DB *gorm.DB
}

func NewUsersController(db *gorm.DB) *UsersController {
	return &UsersController{DB: db}
}

// GET /api/users?q=&role=
func (ctrl *UsersController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{
		"created_at":    "created_at",
		"email":         "email",
		"name":          "name",
		"last_login_at": "last_login_at",
	}, "created_at")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var users []model.UserModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&users).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(users), p.Pagination(total, len(users)))
}

// PATCH /api/users/:id
func (ctrl *UsersController) UpdateRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateUserRoleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Role = strings.ToLower(strings.TrimSpace(body.Role))
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if actorID == id && body.Role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusBadRequest, "ไม่สามารถลดสิทธิ์ของตนเองได้")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgUserNotFound, "")
	}
	wasAdmin := user.IsAdmin()
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("role", body.Role).Error; err != nil {
			return err
		}
		if wasAdmin == (body.Role == constants.RoleAdmin) {
			return nil
		}
		// live tokens still carry the old role claim
		return helperAuth.RevokeUserSessions(c.UserContext(), tx, user.ID, configs.SessionTTL)
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	slog.InfoContext(c.UserContext(), "user role changed",
		"user_id", user.ID, "email", user.Email, "was_admin", wasAdmin, "to", body.Role, "by", actorID)

	return helper.JsonUpdated(c, "อัปเดตสิทธิ์ผู้ใช้เรียบร้อย", dto.FromModel(&user))
}

// DELETE /api/users/:id
func (ctrl *UsersController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if actorID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "ไม่สามารถลบบัญชีของตนเองได้")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, msgUserNotFound)
	}
	if err := helperAuth.RevokeUserSessions(c.UserContext(), ctrl.DB, id, configs.SessionTTL); err != nil {
		return helper.FromError(c, err)
	}
	slog.InfoContext(c.UserContext(), "user deleted", "user_id", id, "by", actorID)
	return helper.JsonDeleted(c, "ลบผู้ใช้เรียบร้อย", fiber.Map{"id": id})
}
