// file: internals/features/school/academics/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel representa la tabla `students`
type StudentModel struct {
	StudentsID            uuid.UUID `json:"students_id" gorm:"column:students_id;type:uuid;primaryKey"`
	StudentsFullName      string    `json:"students_full_name" gorm:"column:students_full_name;type:varchar(180);not null"`
	StudentsControlNumber string    `json:"students_control_number" gorm:"column:students_control_number;type:varchar(32);not null;uniqueIndex:uq_students_control_number"`

	StudentsCreatedAt time.Time      `json:"students_created_at" gorm:"column:students_created_at;not null;autoCreateTime"`
	StudentsUpdatedAt time.Time      `json:"students_updated_at" gorm:"column:students_updated_at;not null;autoUpdateTime"`
	StudentsDeletedAt gorm.DeletedAt `json:"students_deleted_at" gorm:"column:students_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentsID == uuid.Nil {
		m.StudentsID = uuid.New()
	}
	return nil
}
