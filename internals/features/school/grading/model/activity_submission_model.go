// file: internals/features/school/grading/model/activity_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivitySubmissionModel representa la tabla `activity_submissions`.
// Una entrega por (actividad, alumno); la puntuación obtenida se valida
// contra el máximo de la actividad al escribir.
type ActivitySubmissionModel struct {
	ActivitySubmissionsID         uuid.UUID `json:"activity_submissions_id" gorm:"column:activity_submissions_id;type:uuid;primaryKey"`
	ActivitySubmissionsActivityID uuid.UUID `json:"activity_submissions_activity_id" gorm:"column:activity_submissions_activity_id;type:uuid;not null;index:idx_activity_submissions_activity;uniqueIndex:uq_activity_submissions_key,priority:1"`
	ActivitySubmissionsStudentID  uuid.UUID `json:"activity_submissions_student_id" gorm:"column:activity_submissions_student_id;type:uuid;not null;index:idx_activity_submissions_student;uniqueIndex:uq_activity_submissions_key,priority:2"`

	ActivitySubmissionsScore float64 `json:"activity_submissions_score" gorm:"column:activity_submissions_score;type:numeric(6,2);not null;default:0"`

	ActivitySubmissionsGradedBy *uuid.UUID `json:"activity_submissions_graded_by" gorm:"column:activity_submissions_graded_by;type:uuid"`
	ActivitySubmissionsGradedAt *time.Time `json:"activity_submissions_graded_at" gorm:"column:activity_submissions_graded_at;type:timestamptz"`

	ActivitySubmissionsCreatedAt time.Time      `json:"activity_submissions_created_at" gorm:"column:activity_submissions_created_at;not null;autoCreateTime"`
	ActivitySubmissionsUpdatedAt time.Time      `json:"activity_submissions_updated_at" gorm:"column:activity_submissions_updated_at;not null;autoUpdateTime"`
	ActivitySubmissionsDeletedAt gorm.DeletedAt `json:"activity_submissions_deleted_at" gorm:"column:activity_submissions_deleted_at;index"`

	Activity *ActivityModel `json:"activity,omitempty" gorm:"foreignKey:ActivitySubmissionsActivityID;references:ActivitiesID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ActivitySubmissionModel) TableName() string { return "activity_submissions" }

func (m *ActivitySubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivitySubmissionsID == uuid.Nil {
		m.ActivitySubmissionsID = uuid.New()
	}
	return nil
}
