// file: internals/features/school/grading/service/unit_grade_service.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	attendanceService "controlescolar_backend/internals/features/school/attendance/service"
	model "controlescolar_backend/internals/features/school/grading/model"
	helper "controlescolar_backend/internals/helpers"
)

// Pesos fijos por categoría dentro de una unidad.
const (
	WeightTarea    = 0.40
	WeightExamen   = 0.50
	WeightConducta = 0.10
)

// UnitGradeService recalcula el promedio de unidad de un alumno.
// El recálculo es idempotente: siempre produce el resultado canónico a
// partir de los insumos actuales, y serializa recálculos concurrentes
// de la misma (alumno, unidad) con un candado de fila exclusivo.
type UnitGradeService struct {
	Scorer       *CategoryScorer
	Eligibility  *attendanceService.EligibilityService
	FinalAverage *FinalAverageService
}

func NewUnitGradeService() *UnitGradeService {
	return &UnitGradeService{
		Scorer:       NewCategoryScorer(),
		Eligibility:  attendanceService.NewEligibilityService(),
		FinalAverage: NewFinalAverageService(),
	}
}

// forUpdate aplica SELECT ... FOR UPDATE sólo donde el dialecto lo
// soporta; sqlite (pruebas) serializa escrituras por sí mismo.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Recompute recalcula el promedio de la unidad indicada dentro de una
// transacción propia y refresca el promedio final de la inscripción.
// Cualquier falla de almacenamiento revierte todo.
func (s *UnitGradeService) Recompute(db *gorm.DB, studentID, courseLoadID uuid.UUID, unitIndex int) (*model.UnitGradeModel, error) {
	var grade *model.UnitGradeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		load, unit, err := s.resolveUnit(tx, courseLoadID, unitIndex)
		if err != nil {
			return err
		}
		enrollment, err := s.ensureEnrollment(tx, studentID, load)
		if err != nil {
			return err
		}
		grade, err = s.recomputeLocked(tx, load, unit, enrollment)
		return err
	})
	if err != nil {
		return nil, err
	}
	return grade, nil
}

// SaveManualScore guarda examen y/o conducta capturados por el docente
// y recalcula. Capturar examen para un alumno sin derecho es un rechazo
// de regla de negocio, no se ignora en silencio.
func (s *UnitGradeService) SaveManualScore(db *gorm.DB, enrollmentID uuid.UUID, unitIndex int, examScore, conductScore *float64) (*model.UnitGradeModel, error) {
	if examScore != nil && (*examScore < 0 || *examScore > 100) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La calificación de examen debe estar entre 0 y 100")
	}
	if conductScore != nil && (*conductScore < 0 || *conductScore > 100) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La calificación de conducta debe estar entre 0 y 100")
	}

	var grade *model.UnitGradeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var enrollment model.EnrollmentModel
		if err := tx.First(&enrollment, "enrollments_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Inscripción no encontrada")
			}
			return err
		}
		if enrollment.EnrollmentsCourseLoadID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "La inscripción no está ligada a una carga académica")
		}

		load, unit, err := s.resolveUnit(tx, *enrollment.EnrollmentsCourseLoadID, unitIndex)
		if err != nil {
			return err
		}

		g, err := s.lockOrCreateGrade(tx, &enrollment, unit)
		if err != nil {
			return err
		}

		if examScore != nil {
			elig, err := s.Eligibility.Compute(tx, enrollment.EnrollmentsStudentID, load.CourseLoadsID)
			if err != nil {
				return err
			}
			if !elig.ExamEligible {
				return fiber.NewError(fiber.StatusConflict,
					"El alumno no tiene derecho a examen por asistencia insuficiente")
			}
			g.UnitGradesExamScore = examScore
		}
		if conductScore != nil {
			g.UnitGradesConductScore = *conductScore
		}
		if err := tx.Save(g).Error; err != nil {
			return err
		}

		grade, err = s.recomputeLocked(tx, load, unit, &enrollment)
		return err
	})
	if err != nil {
		return nil, err
	}
	return grade, nil
}

/* ========================================================
   Internos
======================================================== */

func (s *UnitGradeService) resolveUnit(tx *gorm.DB, courseLoadID uuid.UUID, unitIndex int) (*academicsModel.CourseLoadModel, *academicsModel.CourseUnitModel, error) {
	var load academicsModel.CourseLoadModel
	if err := tx.First(&load, "course_loads_id = ?", courseLoadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Carga académica no encontrada")
		}
		return nil, nil, err
	}

	var unit academicsModel.CourseUnitModel
	if err := tx.First(&unit, "course_units_course_load_id = ? AND course_units_order_index = ?",
		courseLoadID, unitIndex).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Unidad desconocida para la carga académica")
		}
		return nil, nil, err
	}
	return &load, &unit, nil
}

// ensureEnrollment crea la inscripción por materia de forma perezosa
// en el primer evento que afecta calificación.
func (s *UnitGradeService) ensureEnrollment(tx *gorm.DB, studentID uuid.UUID, load *academicsModel.CourseLoadModel) (*model.EnrollmentModel, error) {
	var enrollment model.EnrollmentModel
	err := tx.First(&enrollment,
		"enrollments_student_id = ? AND enrollments_period_id = ? AND enrollments_course_load_id = ?",
		studentID, load.CourseLoadsPeriodID, load.CourseLoadsID).Error
	if err == nil {
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	loadID := load.CourseLoadsID
	groupID := load.CourseLoadsGroupID
	enrollment = model.EnrollmentModel{
		EnrollmentsStudentID:    studentID,
		EnrollmentsPeriodID:     load.CourseLoadsPeriodID,
		EnrollmentsGroupID:      &groupID,
		EnrollmentsCourseLoadID: &loadID,
		EnrollmentsStatus:       model.EnrollmentCursando,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// lockOrCreateGrade toma el candado exclusivo sobre la fila de
// calificación de la (alumno, unidad); si no existe crea una en ceros.
func (s *UnitGradeService) lockOrCreateGrade(tx *gorm.DB, enrollment *model.EnrollmentModel, unit *academicsModel.CourseUnitModel) (*model.UnitGradeModel, error) {
	var grade model.UnitGradeModel
	err := forUpdate(tx).First(&grade,
		"unit_grades_student_id = ? AND unit_grades_course_unit_id = ?",
		enrollment.EnrollmentsStudentID, unit.CourseUnitsID).Error
	if err == nil {
		return &grade, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	grade = model.UnitGradeModel{
		UnitGradesEnrollmentID: enrollment.EnrollmentsID,
		UnitGradesStudentID:    enrollment.EnrollmentsStudentID,
		UnitGradesCourseUnitID: unit.CourseUnitsID,
	}
	if err := tx.Create(&grade).Error; err != nil {
		return nil, err
	}
	// Re-leer con candado para cubrir una creación concurrente.
	if err := forUpdate(tx).First(&grade,
		"unit_grades_student_id = ? AND unit_grades_course_unit_id = ?",
		enrollment.EnrollmentsStudentID, unit.CourseUnitsID).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

// recomputeLocked aplica el algoritmo canónico de la unidad sobre la
// fila ya bloqueada:
//   - tareas se derivan de actividades (peso 40),
//   - conducta se conserva del valor capturado (peso 10),
//   - examen sólo cuenta con derecho por asistencia (peso 50); sin
//     derecho, el examen guardado se descarta a NULL,
//   - la suma ponderada NUNCA se reescala cuando falta el examen:
//     el máximo alcanzable de un alumno sin derecho es 50, no 100.
func (s *UnitGradeService) recomputeLocked(tx *gorm.DB, load *academicsModel.CourseLoadModel, unit *academicsModel.CourseUnitModel, enrollment *model.EnrollmentModel) (*model.UnitGradeModel, error) {
	grade, err := s.lockOrCreateGrade(tx, enrollment, unit)
	if err != nil {
		return nil, err
	}

	taskScore, err := s.Scorer.Score(tx, enrollment.EnrollmentsStudentID, load.CourseLoadsID,
		unit.CourseUnitsOrderIndex, model.CategoryTarea)
	if err != nil {
		return nil, err
	}

	elig, err := s.Eligibility.Compute(tx, enrollment.EnrollmentsStudentID, load.CourseLoadsID)
	if err != nil {
		return nil, err
	}

	grade.UnitGradesTaskScore = taskScore
	grade.UnitGradesAttendancePct = elig.Percentage
	grade.UnitGradesExamEligible = elig.ExamEligible
	if !elig.ExamEligible {
		// Perder el derecho invalida el examen previamente capturado.
		grade.UnitGradesExamScore = nil
	}

	raw := grade.UnitGradesTaskScore*WeightTarea + grade.UnitGradesConductScore*WeightConducta
	if elig.ExamEligible && grade.UnitGradesExamScore != nil {
		raw += *grade.UnitGradesExamScore * WeightExamen
	}

	avg := helper.Round(raw/10, 2)
	grade.UnitGradesUnitAverage = &avg

	if err := tx.Save(grade).Error; err != nil {
		return nil, err
	}

	// El promedio final de la inscripción acompaña cada recálculo de
	// unidad: entre recálculos nunca se lee un promedio final viejo.
	if _, err := s.FinalAverage.Recompute(tx, enrollment); err != nil {
		return nil, err
	}
	return grade, nil
}
