// file: internals/features/school/promotion/controller/promotion_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "controlescolar_backend/internals/features/school/promotion/model"
	service "controlescolar_backend/internals/features/school/promotion/service"
	helper "controlescolar_backend/internals/helpers"
)

type PromotionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Promotion *service.PromotionService
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{
		DB:        db,
		Validator: validator.New(),
		Promotion: service.NewPromotionService(),
	}
}

// POST /periods/:id/close
func (ctl *PromotionController) ClosePeriod(c *fiber.Ctx) error {
	periodID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "period_id inválido")
	}

	var spec service.NextPeriodSpec
	if err := c.BodyParser(&spec); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(spec); err != nil {
		return helper.ValidationError(c, err)
	}

	summary, err := ctl.Promotion.ClosePeriod(ctl.DB, periodID, spec)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Periodo cerrado", summary)
}

// GET /promotion-runs?period_id=
func (ctl *PromotionController) ListRuns(c *fiber.Ctx) error {
	qry := ctl.DB.Model(&model.PromotionRunModel{}).
		Order("promotion_runs_created_at DESC")
	if pidStr := strings.TrimSpace(c.Query("period_id")); pidStr != "" {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "period_id inválido")
		}
		qry = qry.Where("promotion_runs_period_id = ?", pid)
	}

	var runs []model.PromotionRunModel
	if err := qry.Find(&runs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando cierres")
	}
	return helper.Success(c, "Cierres de periodo", runs)
}
