// file: internals/features/school/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estatus de asistencia
const (
	AttendancePresente    = "presente"
	AttendanceAusente     = "ausente"
	AttendanceRetardo     = "retardo"
	AttendanceJustificado = "justificado"
)

// AttendanceRecordModel representa la tabla `attendance_records`.
// Un registro por (alumno, sesión, fecha).
type AttendanceRecordModel struct {
	AttendanceRecordsID        uuid.UUID `json:"attendance_records_id" gorm:"column:attendance_records_id;type:uuid;primaryKey"`
	AttendanceRecordsStudentID uuid.UUID `json:"attendance_records_student_id" gorm:"column:attendance_records_student_id;type:uuid;not null;index:idx_attendance_records_student;uniqueIndex:uq_attendance_records_key,priority:1"`
	AttendanceRecordsSessionID uuid.UUID `json:"attendance_records_session_id" gorm:"column:attendance_records_session_id;type:uuid;not null;index:idx_attendance_records_session;uniqueIndex:uq_attendance_records_key,priority:2"`

	AttendanceRecordsDate   time.Time `json:"attendance_records_date" gorm:"column:attendance_records_date;type:date;not null;uniqueIndex:uq_attendance_records_key,priority:3"`
	AttendanceRecordsStatus string    `json:"attendance_records_status" gorm:"column:attendance_records_status;type:varchar(16);not null;default:'presente'"`

	AttendanceRecordsCreatedAt time.Time      `json:"attendance_records_created_at" gorm:"column:attendance_records_created_at;not null;autoCreateTime"`
	AttendanceRecordsUpdatedAt time.Time      `json:"attendance_records_updated_at" gorm:"column:attendance_records_updated_at;not null;autoUpdateTime"`
	AttendanceRecordsDeletedAt gorm.DeletedAt `json:"attendance_records_deleted_at" gorm:"column:attendance_records_deleted_at;index"`

	Session *ClassSessionModel `json:"session,omitempty" gorm:"foreignKey:AttendanceRecordsSessionID;references:ClassSessionsID"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordsID == uuid.Nil {
		m.AttendanceRecordsID = uuid.New()
	}
	return nil
}

func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresente, AttendanceAusente, AttendanceRetardo, AttendanceJustificado:
		return true
	}
	return false
}
