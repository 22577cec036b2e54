// file: internals/features/school/attendance/service/eligibility_service.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	attendanceModel "controlescolar_backend/internals/features/school/attendance/model"
	helper "controlescolar_backend/internals/helpers"
)

// Porcentaje mínimo de asistencia para tener derecho a examen.
const EligibilityThreshold = 80.0

// Eligibility es el resultado del cálculo de asistencia de un alumno
// para una carga académica completa (todo el periodo, no por unidad).
type Eligibility struct {
	Percentage   float64 `json:"percentage"`
	ExamEligible bool    `json:"exam_eligible"`
	SessionCount int64   `json:"session_count"`
	RecordCount  int64   `json:"record_count"`
	PresentCount int64   `json:"present_count"`
}

type EligibilityService struct{}

func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// Compute calcula el porcentaje de asistencia de vida-en-periodo del
// alumno para la carga académica y deriva el derecho a examen.
// Las sesiones se resuelven por (carrera, grupo, materia, periodo) sin
// importar unidad ni fecha, igual que la vista de lista de asistencia.
// Nunca se cachea: la asistencia puede cambiar después del último
// cálculo de la unidad.
func (s *EligibilityService) Compute(tx *gorm.DB, studentID, courseLoadID uuid.UUID) (Eligibility, error) {
	var out Eligibility

	// Resolver la carga a (carrera, grupo, materia, periodo).
	var load academicsModel.CourseLoadModel
	if err := tx.Preload("Group").Preload("Subject").
		First(&load, "course_loads_id = ?", courseLoadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, fiber.NewError(fiber.StatusNotFound, "Carga académica no encontrada")
		}
		return out, err
	}
	if load.Group == nil || load.Subject == nil {
		return out, fiber.NewError(fiber.StatusInternalServerError, "Carga académica sin grupo o materia")
	}

	var sessionIDs []uuid.UUID
	if err := tx.Model(&attendanceModel.ClassSessionModel{}).
		Where("class_sessions_career_id = ? AND class_sessions_group_id = ? AND class_sessions_subject_name = ? AND class_sessions_period_id = ?",
			load.Group.GroupsCareerID, load.CourseLoadsGroupID, load.Subject.SubjectsName, load.CourseLoadsPeriodID).
		Pluck("class_sessions_id", &sessionIDs).Error; err != nil {
		return out, err
	}
	out.SessionCount = int64(len(sessionIDs))

	// Sin sesiones o sin registros: 0%, nunca "todo justificado".
	if len(sessionIDs) == 0 {
		return out, nil
	}

	if err := tx.Model(&attendanceModel.AttendanceRecordModel{}).
		Where("attendance_records_student_id = ? AND attendance_records_session_id IN ?", studentID, sessionIDs).
		Count(&out.RecordCount).Error; err != nil {
		return out, err
	}
	if out.RecordCount == 0 {
		return out, nil
	}

	if err := tx.Model(&attendanceModel.AttendanceRecordModel{}).
		Where("attendance_records_student_id = ? AND attendance_records_session_id IN ?", studentID, sessionIDs).
		Where("attendance_records_status = ?", attendanceModel.AttendancePresente).
		Count(&out.PresentCount).Error; err != nil {
		return out, err
	}

	pct := float64(out.PresentCount) / float64(out.RecordCount) * 100
	out.Percentage = helper.Clamp(helper.Round(pct, 0), 0, 100)
	out.ExamEligible = out.Percentage >= EligibilityThreshold
	return out, nil
}
