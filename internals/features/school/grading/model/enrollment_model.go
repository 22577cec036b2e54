// file: internals/features/school/grading/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estatus de inscripción
const (
	EnrollmentCursando  = "cursando"
	EnrollmentAprobado  = "aprobado"
	EnrollmentReprobado = "reprobado"
)

// PassThreshold: promedio final mínimo para aprobar (escala 0-10).
const PassThreshold = 7.0

// EnrollmentModel representa la tabla `enrollments`.
// Se crea de forma perezosa con el primer evento que afecta calificación
// de un alumno en el periodo; nunca se borra, la promoción la supersede
// con una inscripción nueva en el periodo siguiente.
type EnrollmentModel struct {
	EnrollmentsID        uuid.UUID `json:"enrollments_id" gorm:"column:enrollments_id;type:uuid;primaryKey"`
	EnrollmentsStudentID uuid.UUID `json:"enrollments_student_id" gorm:"column:enrollments_student_id;type:uuid;not null;index:idx_enrollments_student;uniqueIndex:uq_enrollments_key,priority:1"`
	EnrollmentsPeriodID  uuid.UUID `json:"enrollments_period_id" gorm:"column:enrollments_period_id;type:uuid;not null;index:idx_enrollments_period;uniqueIndex:uq_enrollments_key,priority:2"`

	// Grupo en el que quedó inscrito el alumno (lo fija la promoción).
	EnrollmentsGroupID *uuid.UUID `json:"enrollments_group_id" gorm:"column:enrollments_group_id;type:uuid;index:idx_enrollments_group"`

	// Carga académica: NULL en la inscripción general del periodo,
	// con valor en las filas por materia que alimentan el promedio.
	EnrollmentsCourseLoadID *uuid.UUID `json:"enrollments_course_load_id" gorm:"column:enrollments_course_load_id;type:uuid;index:idx_enrollments_course_load;uniqueIndex:uq_enrollments_key,priority:3"`

	EnrollmentsFinalAverage *float64 `json:"enrollments_final_average" gorm:"column:enrollments_final_average;type:numeric(5,2)"`
	EnrollmentsStatus       string   `json:"enrollments_status" gorm:"column:enrollments_status;type:varchar(16);not null;default:'cursando'"`

	EnrollmentsCreatedAt time.Time      `json:"enrollments_created_at" gorm:"column:enrollments_created_at;not null;autoCreateTime"`
	EnrollmentsUpdatedAt time.Time      `json:"enrollments_updated_at" gorm:"column:enrollments_updated_at;not null;autoUpdateTime"`
	EnrollmentsDeletedAt gorm.DeletedAt `json:"enrollments_deleted_at" gorm:"column:enrollments_deleted_at;index"`

	UnitGrades []UnitGradeModel `json:"unit_grades,omitempty" gorm:"foreignKey:UnitGradesEnrollmentID;references:EnrollmentsID"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentsID == uuid.Nil {
		m.EnrollmentsID = uuid.New()
	}
	return nil
}

// IsPassing evalúa el umbral fijo de aprobación sobre el promedio calculado.
func (m *EnrollmentModel) IsPassing() bool {
	return m.EnrollmentsFinalAverage != nil && *m.EnrollmentsFinalAverage >= PassThreshold
}
