// file: internals/features/school/grading/controller/submission_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "controlescolar_backend/internals/features/school/grading/dto"
	model "controlescolar_backend/internals/features/school/grading/model"
	service "controlescolar_backend/internals/features/school/grading/service"
	helper "controlescolar_backend/internals/helpers"
)

// SubmissionController captura entregas de actividades. Cada mutación
// de una entrega de tarea publica SubmissionChanged; el recálculo del
// promedio vive del otro lado del dispatcher, no aquí.
type SubmissionController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Dispatcher *service.Dispatcher
}

func NewSubmissionController(db *gorm.DB, dispatcher *service.Dispatcher) *SubmissionController {
	return &SubmissionController{
		DB:         db,
		Validator:  validator.New(),
		Dispatcher: dispatcher,
	}
}

// PUT /submissions — upsert por (actividad, alumno)
func (ctl *SubmissionController) Upsert(c *fiber.Ctx) error {
	var req dto.SubmissionUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var activity model.ActivityModel
	if err := ctl.DB.First(&activity, "activities_id = ?", req.ActivityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Actividad no encontrada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando la actividad")
	}

	// Validación al escribir: jamás se guarda arriba del máximo.
	if req.Score > activity.ActivitiesMaxScore {
		return helper.Error(c, fiber.StatusBadRequest, "La puntuación excede el máximo de la actividad")
	}

	now := time.Now()
	var submission model.ActivitySubmissionModel
	err := ctl.DB.First(&submission,
		"activity_submissions_activity_id = ? AND activity_submissions_student_id = ?",
		req.ActivityID, req.StudentID).Error
	switch {
	case err == nil:
		submission.ActivitySubmissionsScore = req.Score
		submission.ActivitySubmissionsGradedBy = req.GradedBy
		submission.ActivitySubmissionsGradedAt = &now
		if err := ctl.DB.Save(&submission).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Error guardando la entrega")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = model.ActivitySubmissionModel{
			ActivitySubmissionsActivityID: req.ActivityID,
			ActivitySubmissionsStudentID:  req.StudentID,
			ActivitySubmissionsScore:      req.Score,
			ActivitySubmissionsGradedBy:   req.GradedBy,
			ActivitySubmissionsGradedAt:   &now,
		}
		if err := ctl.DB.Create(&submission).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Error guardando la entrega")
		}
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando la entrega")
	}

	if err := ctl.publishIfTask(&activity, req.StudentID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Entrega guardada", submission)
}

// DELETE /submissions/:id
func (ctl *SubmissionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "submission_id inválido")
	}

	var submission model.ActivitySubmissionModel
	if err := ctl.DB.Preload("Activity").First(&submission, "activity_submissions_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Entrega no encontrada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando la entrega")
	}

	if err := ctl.DB.Delete(&submission).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error eliminando la entrega")
	}

	if submission.Activity != nil {
		if err := ctl.publishIfTask(submission.Activity, submission.ActivitySubmissionsStudentID); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.Success(c, "Entrega eliminada", nil)
}

func (ctl *SubmissionController) publishIfTask(activity *model.ActivityModel, studentID uuid.UUID) error {
	if activity.ActivitiesCategory != model.CategoryTarea {
		return nil
	}
	return ctl.Dispatcher.Publish(service.SubmissionChanged{
		StudentID:    studentID,
		CourseLoadID: activity.ActivitiesCourseLoadID,
		UnitIndex:    activity.ActivitiesUnitIndex,
	})
}
