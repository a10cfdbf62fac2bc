package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/alumni/profiles/dto"
	"mwit_alumni_backend/internals/features/alumni/profiles/model"
	helper "mwit_alumni_backend/internals/helpers"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
)

const (
	msgProfileNotFound = "ไม่พบข้อมูลศิษย์เก่า"
	msgEmailTaken      = "อีเมลนี้ถูกใช้ลงทะเบียนแล้ว"
)

type AlumniProfileController struct {
	DB       *gorm.DB
	Uploader helperOSS.Uploader
}

func NewAlumniProfileController(db *gorm.DB, up helperOSS.Uploader) *AlumniProfileController {
	return &AlumniProfileController{DB: db, Uploader: up}
}

var sortColumns = map[string]string{
	"generation": "generation",
	"first_name": "first_name",
	"created_at": "created_at",
}

func searchable(q *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if gen := strings.TrimSpace(c.Query("generation")); gen != "" {
		q = q.Where("generation = ?", gen)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(COALESCE(nickname,'')) LIKE ? OR LOWER(COALESCE(occupation,'')) LIKE ?",
			like, like, like, like)
	}
	return q
}

// GET /api/alumni?generation=&q=
func (ctrl *AlumniProfileController) PublicList(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "generation", "asc", helper.DefaultOpts)
	order, _ := p.OrderClause(sortColumns, "generation")

	q := searchable(ctrl.DB.WithContext(c.UserContext()).Model(&model.AlumniProfile{}).Where("is_public = ?", true), c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.AlumniProfile
	if err := q.Order(order).Order("first_name ASC").Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToPublic(list), p.Pagination(total, len(list)))
}

// GET /api/alumni/all
func (ctrl *AlumniProfileController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(sortColumns, "created_at")

	q := searchable(ctrl.DB.WithContext(c.UserContext()).Model(&model.AlumniProfile{}), c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.AlumniProfile
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// mine finds the caller's profile by user id, then by email for profiles
// registered before the account was linked.
func mine(db *gorm.DB, s *helperAuth.Session) (*model.AlumniProfile, error) {
	var p model.AlumniProfile
	err := db.Where("user_id = ?", s.UserID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.Where("LOWER(email) = ?", strings.ToLower(s.Email)).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GET /api/alumni/profile
func (ctrl *AlumniProfileController) GetMine(c *fiber.Ctx) error {
	s := helperAuth.SessionFromCtx(c)
	if s == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrLoginRequired)
	}
	p, err := mine(ctrl.DB.WithContext(c.UserContext()), s)
	if err != nil {
		return helper.FromDBError(c, err, msgProfileNotFound, "")
	}
	return helper.JsonOK(c, "ok", p)
}

// PUT /api/alumni/profile  (JSON or multipart with "image")
func (ctrl *AlumniProfileController) UpsertMine(c *fiber.Ctx) error {
	s := helperAuth.SessionFromCtx(c)
	if s == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrLoginRequired)
	}
	body, err := dto.BindUpsert(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var imageURL string
	if fh := helperOSS.FormImage(c, "image", "photo"); fh != nil {
		if ctrl.Uploader == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, constants.MsgStorageUnavailable)
		}
		if imageURL, err = ctrl.Uploader.UploadAsWebP(c.UserContext(), fh, "alumni"); err != nil {
			return helper.FromError(c, err)
		}
	}

	db := ctrl.DB.WithContext(c.UserContext())
	p, err := mine(db, s)
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = &model.AlumniProfile{Email: strings.ToLower(s.Email)}
		created = true
	case err != nil:
		return helper.FromError(c, err)
	}

	uid := s.UserID
	if uid != uuid.Nil {
		p.UserID = &uid
	}
	body.ApplyTo(p)

	var oldImage string
	if imageURL != "" {
		if p.ImageURL != nil {
			oldImage = *p.ImageURL
		}
		p.ImageURL = &imageURL
	}

	if created {
		err = db.Create(p).Error
	} else {
		err = db.Save(p).Error
	}
	if err != nil {
		helperOSS.TrashAsync(ctrl.Uploader, imageURL)
		return helper.FromDBError(c, err, msgProfileNotFound, msgEmailTaken)
	}
	helperOSS.TrashAsync(ctrl.Uploader, oldImage)

	if created {
		return helper.JsonCreated(c, "ลงทะเบียนศิษย์เก่าเรียบร้อย", p)
	}
	return helper.JsonUpdated(c, "อัปเดตข้อมูลศิษย์เก่าเรียบร้อย", p)
}

// DELETE /api/alumni/:id
func (ctrl *AlumniProfileController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := ctrl.DB.WithContext(c.UserContext())
	var p model.AlumniProfile
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return helper.FromDBError(c, err, msgProfileNotFound, "")
	}
	if err := db.Delete(&p).Error; err != nil {
		return helper.FromError(c, err)
	}
	if p.ImageURL != nil {
		helperOSS.TrashAsync(ctrl.Uploader, *p.ImageURL)
	}
	return helper.JsonDeleted(c, "ลบข้อมูลศิษย์เก่าเรียบร้อย", fiber.Map{"id": id})
}
