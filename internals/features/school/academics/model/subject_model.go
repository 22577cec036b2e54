// file: internals/features/school/academics/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectModel representa la tabla `subjects`
type SubjectModel struct {
	SubjectsID   uuid.UUID `json:"subjects_id" gorm:"column:subjects_id;type:uuid;primaryKey"`
	SubjectsName string    `json:"subjects_name" gorm:"column:subjects_name;type:varchar(120);not null;uniqueIndex:uq_subjects_name"`

	SubjectsCreatedAt time.Time      `json:"subjects_created_at" gorm:"column:subjects_created_at;not null;autoCreateTime"`
	SubjectsUpdatedAt time.Time      `json:"subjects_updated_at" gorm:"column:subjects_updated_at;not null;autoUpdateTime"`
	SubjectsDeletedAt gorm.DeletedAt `json:"subjects_deleted_at" gorm:"column:subjects_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectsID == uuid.Nil {
		m.SubjectsID = uuid.New()
	}
	return nil
}
