// file: internals/features/school/grading/model/unit_grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitGradeModel representa la tabla `unit_grades`
// (el "calificaciones_detalle" histórico, colapsado al modelo dinámico):
// una fila por (alumno, unidad de curso), con la inscripción como dueña.
// Se crea en el primer recálculo y se muta en cada recálculo posterior.
type UnitGradeModel struct {
	UnitGradesID           uuid.UUID `json:"unit_grades_id" gorm:"column:unit_grades_id;type:uuid;primaryKey"`
	UnitGradesEnrollmentID uuid.UUID `json:"unit_grades_enrollment_id" gorm:"column:unit_grades_enrollment_id;type:uuid;not null;index:idx_unit_grades_enrollment"`
	UnitGradesStudentID    uuid.UUID `json:"unit_grades_student_id" gorm:"column:unit_grades_student_id;type:uuid;not null;uniqueIndex:uq_unit_grades_key,priority:1"`
	UnitGradesCourseUnitID uuid.UUID `json:"unit_grades_course_unit_id" gorm:"column:unit_grades_course_unit_id;type:uuid;not null;uniqueIndex:uq_unit_grades_key,priority:2"`

	// Puntajes por categoría en escala 0-100.
	UnitGradesTaskScore    float64  `json:"unit_grades_task_score" gorm:"column:unit_grades_task_score;type:numeric(5,2);not null;default:0"`
	UnitGradesConductScore float64  `json:"unit_grades_conduct_score" gorm:"column:unit_grades_conduct_score;type:numeric(5,2);not null;default:0"`
	UnitGradesExamScore    *float64 `json:"unit_grades_exam_score" gorm:"column:unit_grades_exam_score;type:numeric(5,2)"`

	// Asistencia y elegibilidad al momento del cálculo.
	UnitGradesAttendancePct float64 `json:"unit_grades_attendance_pct" gorm:"column:unit_grades_attendance_pct;type:numeric(5,2);not null;default:0"`
	UnitGradesExamEligible  bool    `json:"unit_grades_exam_eligible" gorm:"column:unit_grades_exam_eligible;not null;default:false"`

	// Promedio de unidad en escala 0-10; NULL hasta el primer cálculo.
	UnitGradesUnitAverage *float64 `json:"unit_grades_unit_average" gorm:"column:unit_grades_unit_average;type:numeric(4,2)"`

	UnitGradesCreatedAt time.Time      `json:"unit_grades_created_at" gorm:"column:unit_grades_created_at;not null;autoCreateTime"`
	UnitGradesUpdatedAt time.Time      `json:"unit_grades_updated_at" gorm:"column:unit_grades_updated_at;not null;autoUpdateTime"`
	UnitGradesDeletedAt gorm.DeletedAt `json:"unit_grades_deleted_at" gorm:"column:unit_grades_deleted_at;index"`

	Enrollment *EnrollmentModel `json:"enrollment,omitempty" gorm:"foreignKey:UnitGradesEnrollmentID;references:EnrollmentsID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (UnitGradeModel) TableName() string { return "unit_grades" }

func (m *UnitGradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.UnitGradesID == uuid.Nil {
		m.UnitGradesID = uuid.New()
	}
	return nil
}
