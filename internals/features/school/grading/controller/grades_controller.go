// file: internals/features/school/grading/controller/grades_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	dto "controlescolar_backend/internals/features/school/grading/dto"
	model "controlescolar_backend/internals/features/school/grading/model"
	service "controlescolar_backend/internals/features/school/grading/service"
	helper "controlescolar_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

type GradesController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	UnitGrades *service.UnitGradeService
	Dispatcher *service.Dispatcher
}

func NewGradesController(db *gorm.DB, dispatcher *service.Dispatcher) *GradesController {
	return &GradesController{
		DB:         db,
		Validator:  validator.New(),
		UnitGrades: service.NewUnitGradeService(),
		Dispatcher: dispatcher,
	}
}

/* ========================================================
   Handlers
======================================================== */

// GET /course-loads/:id/units/:unit/grades
// La lectura dispara recálculo para cada alumno del grupo: el renglón
// devuelto siempre es el canónico respecto a los insumos actuales.
func (ctl *GradesController) GetGroupGrades(c *fiber.Ctx) error {
	courseLoadID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_load_id inválido")
	}
	unitIndex, err := strconv.Atoi(c.Params("unit"))
	if err != nil || unitIndex < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Unidad inválida")
	}

	var load academicsModel.CourseLoadModel
	if err := ctl.DB.First(&load, "course_loads_id = ?", courseLoadID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Carga académica no encontrada")
	}

	// Roster: alumnos con alguna inscripción del periodo en el grupo.
	var studentIDs []uuid.UUID
	if err := ctl.DB.Model(&model.EnrollmentModel{}).
		Distinct("enrollments_student_id").
		Where("enrollments_period_id = ? AND enrollments_group_id = ?",
			load.CourseLoadsPeriodID, load.CourseLoadsGroupID).
		Pluck("enrollments_student_id", &studentIDs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando el grupo")
	}

	rows := make([]dto.GroupGradeRow, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		grade, err := ctl.UnitGrades.Recompute(ctl.DB, studentID, courseLoadID, unitIndex)
		if err != nil {
			return helper.FromFiberError(c, err)
		}

		var student academicsModel.StudentModel
		if err := ctl.DB.First(&student, "students_id = ?", studentID).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Error consultando alumnos")
		}

		rows = append(rows, dto.GroupGradeRow{
			StudentID:     studentID,
			StudentName:   student.StudentsFullName,
			EnrollmentID:  grade.UnitGradesEnrollmentID,
			AttendancePct: grade.UnitGradesAttendancePct,
			ExamEligible:  grade.UnitGradesExamEligible,
			TaskScore:     grade.UnitGradesTaskScore,
			ConductScore:  grade.UnitGradesConductScore,
			ExamScore:     grade.UnitGradesExamScore,
			UnitAverage:   grade.UnitGradesUnitAverage,
		})
	}

	return helper.Success(c, "Calificaciones del grupo", rows)
}

// GET /course-loads/:id/units/:unit/students/:studentId/breakdown?category=tarea
func (ctl *GradesController) GetStudentBreakdown(c *fiber.Ctx) error {
	courseLoadID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_load_id inválido")
	}
	unitIndex, err := strconv.Atoi(c.Params("unit"))
	if err != nil || unitIndex < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Unidad inválida")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("studentId")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "student_id inválido")
	}
	category := strings.TrimSpace(c.Query("category", model.CategoryTarea))
	if !model.ValidCategory(category) {
		return helper.Error(c, fiber.StatusBadRequest, "Categoría inválida")
	}

	items, err := ctl.UnitGrades.Scorer.Breakdown(ctl.DB, studentID, courseLoadID, unitIndex, category)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	score, err := ctl.UnitGrades.Scorer.Score(ctl.DB, studentID, courseLoadID, unitIndex, category)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Desglose de actividades", dto.BreakdownResponse{
		StudentID:    studentID,
		CourseLoadID: courseLoadID,
		UnitIndex:    unitIndex,
		Category:     category,
		Items:        items,
		Score:        score,
	})
}

// PUT /unit-grades
func (ctl *GradesController) SaveManualScore(c *fiber.Ctx) error {
	var req dto.SaveManualScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ExamScore == nil && req.ConductScore == nil {
		return helper.Error(c, fiber.StatusBadRequest, "Nada que guardar: falta examen o conducta")
	}

	grade, err := ctl.UnitGrades.SaveManualScore(ctl.DB, req.EnrollmentID, req.UnitIndex, req.ExamScore, req.ConductScore)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Calificación guardada", dto.ToUnitGradeResponse(grade))
}

// POST /recalculations
// Lo invoca el almacén de entregas cuando una entrega de tarea cambia.
func (ctl *GradesController) Recalculate(c *fiber.Ctx) error {
	var req dto.RecalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	grade, err := ctl.UnitGrades.Recompute(ctl.DB, req.StudentID, req.CourseLoadID, req.UnitIndex)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Promedio recalculado", dto.ToUnitGradeResponse(grade))
}
