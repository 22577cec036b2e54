// file: internals/features/school/grading/controller/activity_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	dto "controlescolar_backend/internals/features/school/grading/dto"
	model "controlescolar_backend/internals/features/school/grading/model"
	helper "controlescolar_backend/internals/helpers"
)

type ActivityController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /activities
func (ctl *ActivityController) Create(c *fiber.Ctx) error {
	var req dto.ActivityCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// La unidad debe existir en la carga antes de colgar actividades.
	var unitCount int64
	if err := ctl.DB.Model(&academicsModel.CourseUnitModel{}).
		Where("course_units_course_load_id = ? AND course_units_order_index = ?", req.CourseLoadID, req.UnitIndex).
		Count(&unitCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error validando la unidad")
	}
	if unitCount == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Unidad desconocida para la carga académica")
	}

	activity := model.ActivityModel{
		ActivitiesCourseLoadID: req.CourseLoadID,
		ActivitiesUnitIndex:    req.UnitIndex,
		ActivitiesCategory:     req.Category,
		ActivitiesTitle:        req.Title,
		ActivitiesMaxScore:     req.MaxScore,
		ActivitiesIsActive:     true,
		ActivitiesDueAt:        req.DueAt,
	}
	if err := ctl.DB.Create(&activity).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la actividad")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Actividad creada", activity)
}

// GET /activities?course_load_id=&unit_index=&category=
func (ctl *ActivityController) List(c *fiber.Ctx) error {
	courseLoadID, err := uuid.Parse(strings.TrimSpace(c.Query("course_load_id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_load_id inválido")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	qry := ctl.DB.Model(&model.ActivityModel{}).
		Where("activities_course_load_id = ?", courseLoadID)
	if unitStr := strings.TrimSpace(c.Query("unit_index")); unitStr != "" {
		qry = qry.Where("activities_unit_index = ?", unitStr)
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		if !model.ValidCategory(cat) {
			return helper.Error(c, fiber.StatusBadRequest, "Categoría inválida")
		}
		qry = qry.Where("activities_category = ?", cat)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando actividades")
	}

	var activities []model.ActivityModel
	if err := qry.Order("activities_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&activities).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando actividades")
	}

	return helper.Success(c, "Actividades", fiber.Map{
		"items":      activities,
		"pagination": helper.BuildPagination(total, paging, len(activities)),
	})
}

// PUT /activities/:id
func (ctl *ActivityController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "activity_id inválido")
	}

	var req dto.ActivityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var activity model.ActivityModel
	if err := ctl.DB.First(&activity, "activities_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Actividad no encontrada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando la actividad")
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["activities_title"] = *req.Title
	}
	if req.MaxScore != nil {
		updates["activities_max_score"] = *req.MaxScore
	}
	if req.IsActive != nil {
		updates["activities_is_active"] = *req.IsActive
	}
	if req.DueAt != nil {
		updates["activities_due_at"] = *req.DueAt
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nada que actualizar")
	}

	if err := ctl.DB.Model(&activity).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error actualizando la actividad")
	}
	return helper.Success(c, "Actividad actualizada", activity)
}

// DELETE /activities/:id (soft delete)
func (ctl *ActivityController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "activity_id inválido")
	}
	res := ctl.DB.Delete(&model.ActivityModel{}, "activities_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error eliminando la actividad")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Actividad no encontrada")
	}
	return helper.Success(c, "Actividad eliminada", nil)
}
