package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	donationModel "mwit_alumni_backend/internals/features/donations/donations/model"
	"mwit_alumni_backend/internals/features/finance/stats/dto"
	"mwit_alumni_backend/internals/features/finance/stats/model"
	"mwit_alumni_backend/internals/features/finance/stats/service"
	helper "mwit_alumni_backend/internals/helpers"
)

const (
	msgInvalidYear  = "ปีการศึกษาไม่ถูกต้อง"
	msgStatsMissing = "ยังไม่มีสถิติของปีการศึกษานี้"
	unknownGenLabel = "ไม่ระบุรุ่น"
)

type StatsController struct {
	DB      *gorm.DB
	Service *service.StatsService
}

func NewStatsController(db *gorm.DB, svc *service.StatsService) *StatsController {
	return &StatsController{DB: db, Service: svc}
}

// GET /api/stats/yearly?year=2567
func (ctrl *StatsController) Yearly(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.UserContext())

	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := service.NormalizeAcademicYear(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidYear)
		}
		var row model.YearlyStats
		if err := db.Where("academic_year = ?", year).First(&row).Error; err != nil {
			return helper.FromDBError(c, err, msgStatsMissing, "")
		}
		return helper.JsonOK(c, "ok", row)
	}

	var rows []model.YearlyStats
	if err := db.Order("academic_year DESC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/stats/generations
// Approved donations grouped by alumni generation.
func (ctrl *StatsController) Generations(c *fiber.Ctx) error {
	var rows []dto.GenerationStat
	err := ctrl.DB.WithContext(c.UserContext()).
		Model(&donationModel.Donation{}).
		Select("COALESCE(NULLIF(TRIM(donation_generation), ''), ?) AS generation, "+
			"COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS donor_count", unknownGenLabel).
		Where("donation_status = ?", constants.DonationApproved).
		Group("generation").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return helper.FromError(c, err)
	}

	resp := dto.GenerationsResponse{Generations: rows, GrandTotal: decimal.Zero}
	if resp.Generations == nil {
		resp.Generations = []dto.GenerationStat{}
	}
	for _, r := range rows {
		resp.GrandTotal = resp.GrandTotal.Add(r.TotalAmount)
		resp.DonorCount += r.DonorCount
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/stats/yearly/recompute?year=
func (ctrl *StatsController) Recompute(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("year"))
	if raw == "" {
		rows, err := ctrl.Service.RecomputeAll(c.UserContext(), ctrl.DB, "manual")
		if err != nil {
			return helper.FromError(c, err)
		}
		return helper.JsonOK(c, "คำนวณสถิติใหม่เรียบร้อย", rows)
	}

	var row *model.YearlyStats
	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = ctrl.Service.Recompute(c.UserContext(), tx, raw)
		return err
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidYear) {
			return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidYear)
		}
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "คำนวณสถิติใหม่เรียบร้อย", row)
}
