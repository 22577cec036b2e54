// file: internals/features/school/attendance/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSessionModel representa la tabla `class_sessions`.
// La sesión se liga a la carga académica por valor
// (carrera + grupo + nombre de materia + periodo), no por FK;
// así lo consume el cálculo de elegibilidad.
type ClassSessionModel struct {
	ClassSessionsID       uuid.UUID `json:"class_sessions_id" gorm:"column:class_sessions_id;type:uuid;primaryKey"`
	ClassSessionsCareerID uuid.UUID `json:"class_sessions_career_id" gorm:"column:class_sessions_career_id;type:uuid;not null;index:idx_class_sessions_match,priority:1"`
	ClassSessionsGroupID  uuid.UUID `json:"class_sessions_group_id" gorm:"column:class_sessions_group_id;type:uuid;not null;index:idx_class_sessions_match,priority:2"`
	ClassSessionsPeriodID uuid.UUID `json:"class_sessions_period_id" gorm:"column:class_sessions_period_id;type:uuid;not null;index:idx_class_sessions_match,priority:4"`

	ClassSessionsSubjectName string `json:"class_sessions_subject_name" gorm:"column:class_sessions_subject_name;type:varchar(120);not null;index:idx_class_sessions_match,priority:3"`

	ClassSessionsDate  time.Time `json:"class_sessions_date" gorm:"column:class_sessions_date;type:date;not null"`
	ClassSessionsTopic *string   `json:"class_sessions_topic" gorm:"column:class_sessions_topic;type:varchar(180)"`

	ClassSessionsCreatedAt time.Time      `json:"class_sessions_created_at" gorm:"column:class_sessions_created_at;not null;autoCreateTime"`
	ClassSessionsUpdatedAt time.Time      `json:"class_sessions_updated_at" gorm:"column:class_sessions_updated_at;not null;autoUpdateTime"`
	ClassSessionsDeletedAt gorm.DeletedAt `json:"class_sessions_deleted_at" gorm:"column:class_sessions_deleted_at;index"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionsID == uuid.Nil {
		m.ClassSessionsID = uuid.New()
	}
	return nil
}
