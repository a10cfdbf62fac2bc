package controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/finance/expenses/dto"
	"mwit_alumni_backend/internals/features/finance/expenses/model"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	helper "mwit_alumni_backend/internals/helpers"
)

const (
	msgExpenseNotFound = "ไม่พบรายการรายรับรายจ่าย"
	msgAmountPositive  = "จำนวนเงินต้องมากกว่า 0"
	msgInvalidYear     = "ปีการศึกษาไม่ถูกต้อง"
)

type ExpenseController struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewExpenseController(db *gorm.DB, stats *statsService.StatsService) *ExpenseController {
	return &ExpenseController{DB: db, Stats: stats}
}

// GET /api/expenses?year=&type=
func (ctrl *ExpenseController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "expense_date", "desc", helper.AdminOpts)
	order, _ := p.OrderClause(map[string]string{
		"expense_date":   "expense_date",
		"expense_amount": "expense_amount",
		"created_at":     "created_at",
	}, "expense_date")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Expense{})
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := statsService.NormalizeAcademicYear(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidYear)
		}
		q = q.Where("expense_academic_year = ?", year)
	}
	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("expense_type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.Expense
	if err := q.Order(order).Order("created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// POST /api/expenses
func (ctrl *ExpenseController) Create(c *fiber.Ctx) error {
	var body dto.CreateExpenseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if !body.ExpenseAmount.GreaterThan(decimal.Zero) {
		return helper.JsonValidationError(c, map[string]string{"expense_amount": msgAmountPositive})
	}
	year, err := statsService.NormalizeAcademicYear(body.ExpenseAcademicYear)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"expense_academic_year": msgInvalidYear})
	}

	expense, err := body.ToModel(year, helper.GetOptionalUserID(c))
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"expense_date": "รูปแบบวันที่ไม่ถูกต้อง (YYYY-MM-DD)"})
	}

	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		_, err := ctrl.Stats.Recompute(c.UserContext(), tx, expense.ExpenseAcademicYear)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "บันทึกรายการเรียบร้อย", expense)
}

// PUT /api/expenses/:id
func (ctrl *ExpenseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateExpenseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if body.ExpenseAmount != nil && !body.ExpenseAmount.GreaterThan(decimal.Zero) {
		return helper.JsonValidationError(c, map[string]string{"expense_amount": msgAmountPositive})
	}
	var year *string
	if body.ExpenseAcademicYear != nil {
		y, err := statsService.NormalizeAcademicYear(*body.ExpenseAcademicYear)
		if err != nil {
			return helper.JsonValidationError(c, map[string]string{"expense_academic_year": msgInvalidYear})
		}
		year = &y
	}

	var expense model.Expense
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, "expense_id = ?", id).Error; err != nil {
			return err
		}
		oldYear := expense.ExpenseAcademicYear
		if err := body.ApplyTo(&expense, year); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "รูปแบบวันที่ไม่ถูกต้อง (YYYY-MM-DD)")
		}
		if err := tx.Save(&expense).Error; err != nil {
			return err
		}
		return ctrl.Stats.RecomputeYears(c.UserContext(), tx, oldYear, expense.ExpenseAcademicYear)
	})
	if err != nil {
		return helper.FromDBError(c, err, msgExpenseNotFound, "")
	}
	return helper.JsonUpdated(c, "แก้ไขรายการเรียบร้อย", expense)
}

// DELETE /api/expenses/:id
func (ctrl *ExpenseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var expense model.Expense
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, "expense_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}
		_, err := ctrl.Stats.Recompute(c.UserContext(), tx, expense.ExpenseAcademicYear)
		return err
	})
	if err != nil {
		return helper.FromDBError(c, err, msgExpenseNotFound, "")
	}
	slog.InfoContext(c.UserContext(), "expense deleted", "expense_id", id, "year", expense.ExpenseAcademicYear)
	return helper.JsonDeleted(c, "ลบรายการเรียบร้อย", fiber.Map{"expense_id": id})
}

