// file: internals/features/school/promotion/service/promotion_service.go
package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	gradingModel "controlescolar_backend/internals/features/school/grading/model"
	gradingService "controlescolar_backend/internals/features/school/grading/service"
	promotionModel "controlescolar_backend/internals/features/school/promotion/model"
)

const defaultGroupLetter = "A"

// NextPeriodSpec describe el periodo destino: se reutiliza si ya existe
// uno con ese nombre, si no se aprovisiona.
type NextPeriodSpec struct {
	Name     string     `json:"name" validate:"required,min=1,max=80"`
	StartsOn *time.Time `json:"starts_on"`
	EndsOn   *time.Time `json:"ends_on"`
}

// StudentError es la falla registrada de un alumno que no detuvo el
// resto del lote.
type StudentError struct {
	StudentID uuid.UUID `json:"student_id"`
	Message   string    `json:"message"`
}

// Summary es el resultado del cierre de periodo.
type Summary struct {
	PeriodID     uuid.UUID      `json:"period_id"`
	NextPeriodID uuid.UUID      `json:"next_period_id"`
	Promoted     int            `json:"promoted"`
	Retained     int            `json:"retained"`
	Errors       []StudentError `json:"errors"`
}

// PromotionService cierra un periodo: fuerza el promedio final de cada
// carga, decide promoción o retención por alumno y aprovisiona las
// inscripciones del periodo siguiente.
type PromotionService struct {
	FinalAverage *gradingService.FinalAverageService
}

func NewPromotionService() *PromotionService {
	return &PromotionService{
		FinalAverage: gradingService.NewFinalAverageService(),
	}
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ClosePeriod corre todo el cierre en una sola transacción: el volteo
// atómico del candado del periodo garantiza un solo vuelo, la falla de
// un alumno se registra sin frenar el lote (savepoint por alumno) y una
// falla catastrófica revierte absolutamente todo, incluido el candado.
func (s *PromotionService) ClosePeriod(db *gorm.DB, periodID uuid.UUID, next NextPeriodSpec) (Summary, error) {
	summary := Summary{PeriodID: periodID, Errors: []StudentError{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1) Candado de un solo vuelo: abierto → cerrado, atómico.
		var period academicsModel.GradingPeriodModel
		if err := forUpdate(tx).First(&period, "grading_periods_id = ?", periodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Periodo no encontrado")
			}
			return err
		}
		if period.GradingPeriodsIsClosed {
			return fiber.NewError(fiber.StatusConflict, "El periodo ya fue cerrado")
		}
		res := tx.Model(&academicsModel.GradingPeriodModel{}).
			Where("grading_periods_id = ? AND grading_periods_is_closed = ?", periodID, false).
			Update("grading_periods_is_closed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fiber.NewError(fiber.StatusConflict, "El periodo ya fue cerrado")
		}

		// 2) Resolver o aprovisionar el periodo destino.
		nextPeriod, err := s.resolveNextPeriod(tx, periodID, next)
		if err != nil {
			return err
		}
		summary.NextPeriodID = nextPeriod.GradingPeriodsID

		// 3) Todos los alumnos con al menos una inscripción en el periodo.
		var studentIDs []uuid.UUID
		if err := tx.Model(&gradingModel.EnrollmentModel{}).
			Distinct("enrollments_student_id").
			Where("enrollments_period_id = ?", periodID).
			Pluck("enrollments_student_id", &studentIDs).Error; err != nil {
			return err
		}

		for _, studentID := range studentIDs {
			// Savepoint por alumno: su falla se registra y se sigue.
			perr := tx.Transaction(func(stx *gorm.DB) error {
				promoted, err := s.closeStudent(stx, studentID, periodID, nextPeriod)
				if err != nil {
					return err
				}
				if promoted {
					summary.Promoted++
				} else {
					summary.Retained++
				}
				return nil
			})
			if perr != nil {
				log.Printf("[PROMOTION] alumno=%s error=%v", studentID, perr)
				msg := perr.Error()
				if fe, ok := perr.(*fiber.Error); ok {
					msg = fe.Message
				}
				summary.Errors = append(summary.Errors, StudentError{StudentID: studentID, Message: msg})
			}
		}

		return s.persistRun(tx, &summary)
	})
	if err != nil {
		return Summary{PeriodID: periodID, Errors: []StudentError{}}, err
	}
	return summary, nil
}

/* ========================================================
   Internos
======================================================== */

func (s *PromotionService) resolveNextPeriod(tx *gorm.DB, closingID uuid.UUID, spec NextPeriodSpec) (*academicsModel.GradingPeriodModel, error) {
	if spec.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "El periodo destino requiere nombre")
	}

	var period academicsModel.GradingPeriodModel
	err := tx.First(&period, "grading_periods_name = ?", spec.Name).Error
	if err == nil {
		if period.GradingPeriodsID == closingID {
			return nil, fiber.NewError(fiber.StatusBadRequest, "El periodo destino no puede ser el periodo que se cierra")
		}
		if period.GradingPeriodsIsClosed {
			return nil, fiber.NewError(fiber.StatusConflict, "El periodo destino ya está cerrado")
		}
		return &period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	period = academicsModel.GradingPeriodModel{
		GradingPeriodsName:     spec.Name,
		GradingPeriodsStartsOn: spec.StartsOn,
		GradingPeriodsEndsOn:   spec.EndsOn,
	}
	if err := tx.Create(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// closeStudent procesa un alumno: estatus final por carga, decisión de
// promoción y la inscripción nueva del periodo siguiente. Regresa si el
// alumno fue promovido.
func (s *PromotionService) closeStudent(tx *gorm.DB, studentID, periodID uuid.UUID, nextPeriod *academicsModel.GradingPeriodModel) (bool, error) {
	var enrollments []gradingModel.EnrollmentModel
	if err := tx.
		Where("enrollments_student_id = ? AND enrollments_period_id = ?", studentID, periodID).
		Find(&enrollments).Error; err != nil {
		return false, err
	}

	// 1) Forzar promedio final y estatus por carga académica.
	allPassed := true
	for i := range enrollments {
		e := &enrollments[i]
		if e.EnrollmentsCourseLoadID == nil {
			continue
		}
		final, err := s.FinalAverage.Recompute(tx, e)
		if err != nil {
			return false, err
		}
		status := gradingModel.EnrollmentReprobado
		if final >= gradingModel.PassThreshold {
			status = gradingModel.EnrollmentAprobado
		} else {
			allPassed = false
		}
		e.EnrollmentsStatus = status
		if err := tx.Model(&gradingModel.EnrollmentModel{}).
			Where("enrollments_id = ?", e.EnrollmentsID).
			Update("enrollments_status", status).Error; err != nil {
			return false, err
		}
	}

	// 2) Nivel y letra actuales desde el grupo de la inscripción.
	level, letter, careerID, err := s.resolveGroupMeta(tx, enrollments)
	if err != nil {
		return false, err
	}

	targetLevel := level
	if allPassed {
		targetLevel = level + 1
	}

	// 3) Resolver o crear el grupo destino.
	group, err := s.resolveTargetGroup(tx, careerID, targetLevel, letter, nextPeriod.GradingPeriodsID)
	if err != nil {
		return false, err
	}

	// 4) Exactamente una inscripción nueva en el periodo siguiente.
	var existing int64
	if err := tx.Model(&gradingModel.EnrollmentModel{}).
		Where("enrollments_student_id = ? AND enrollments_period_id = ? AND enrollments_course_load_id IS NULL",
			studentID, nextPeriod.GradingPeriodsID).
		Count(&existing).Error; err != nil {
		return false, err
	}
	if existing == 0 {
		groupID := group.GroupsID
		enrollment := gradingModel.EnrollmentModel{
			EnrollmentsStudentID: studentID,
			EnrollmentsPeriodID:  nextPeriod.GradingPeriodsID,
			EnrollmentsGroupID:   &groupID,
			EnrollmentsStatus:    gradingModel.EnrollmentCursando,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return false, err
		}
	}

	return allPassed, nil
}

// resolveGroupMeta saca (nivel, letra, carrera) del primer grupo ligado
// a las inscripciones del alumno; nivel 1 y letra por defecto cuando no
// se puede determinar.
func (s *PromotionService) resolveGroupMeta(tx *gorm.DB, enrollments []gradingModel.EnrollmentModel) (int, string, uuid.UUID, error) {
	for _, e := range enrollments {
		if e.EnrollmentsGroupID == nil {
			continue
		}
		var group academicsModel.GroupModel
		if err := tx.First(&group, "groups_id = ?", *e.EnrollmentsGroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, "", uuid.Nil, err
		}
		letter := group.GroupsLetter
		if letter == "" {
			letter = defaultGroupLetter
		}
		level := group.GroupsGradeLevel
		if level < 1 {
			level = 1
		}
		return level, letter, group.GroupsCareerID, nil
	}
	return 0, "", uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity,
		"No se pudo determinar el grupo del alumno en el periodo que se cierra")
}

func (s *PromotionService) resolveTargetGroup(tx *gorm.DB, careerID uuid.UUID, level int, letter string, periodID uuid.UUID) (*academicsModel.GroupModel, error) {
	if letter == "" {
		letter = defaultGroupLetter
	}

	var group academicsModel.GroupModel
	err := tx.First(&group,
		"groups_career_id = ? AND groups_grade_level = ? AND groups_letter = ? AND groups_period_id = ?",
		careerID, level, letter, periodID).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group = academicsModel.GroupModel{
		GroupsCareerID:   careerID,
		GroupsPeriodID:   periodID,
		GroupsGradeLevel: level,
		GroupsLetter:     letter,
	}
	if err := tx.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *PromotionService) persistRun(tx *gorm.DB, summary *Summary) error {
	raw, err := json.Marshal(summary.Errors)
	if err != nil {
		return err
	}
	run := promotionModel.PromotionRunModel{
		PromotionRunsPeriodID:     summary.PeriodID,
		PromotionRunsNextPeriodID: summary.NextPeriodID,
		PromotionRunsPromoted:     summary.Promoted,
		PromotionRunsRetained:     summary.Retained,
		PromotionRunsErrors:       datatypes.JSON(raw),
	}
	return tx.Create(&run).Error
}
