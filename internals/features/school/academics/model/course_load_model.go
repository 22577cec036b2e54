// file: internals/features/school/academics/model/course_load_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseLoadModel representa la tabla `course_loads`:
// una materia impartida a un grupo dentro de un periodo.
type CourseLoadModel struct {
	CourseLoadsID        uuid.UUID `json:"course_loads_id" gorm:"column:course_loads_id;type:uuid;primaryKey"`
	CourseLoadsGroupID   uuid.UUID `json:"course_loads_group_id" gorm:"column:course_loads_group_id;type:uuid;not null;index:idx_course_loads_group;uniqueIndex:uq_course_loads_key,priority:1"`
	CourseLoadsSubjectID uuid.UUID `json:"course_loads_subject_id" gorm:"column:course_loads_subject_id;type:uuid;not null;index:idx_course_loads_subject;uniqueIndex:uq_course_loads_key,priority:2"`
	CourseLoadsPeriodID  uuid.UUID `json:"course_loads_period_id" gorm:"column:course_loads_period_id;type:uuid;not null;index:idx_course_loads_period;uniqueIndex:uq_course_loads_key,priority:3"`

	CourseLoadsCreatedAt time.Time      `json:"course_loads_created_at" gorm:"column:course_loads_created_at;not null;autoCreateTime"`
	CourseLoadsUpdatedAt time.Time      `json:"course_loads_updated_at" gorm:"column:course_loads_updated_at;not null;autoUpdateTime"`
	CourseLoadsDeletedAt gorm.DeletedAt `json:"course_loads_deleted_at" gorm:"column:course_loads_deleted_at;index"`

	Group   *GroupModel         `json:"group,omitempty" gorm:"foreignKey:CourseLoadsGroupID;references:GroupsID"`
	Subject *SubjectModel       `json:"subject,omitempty" gorm:"foreignKey:CourseLoadsSubjectID;references:SubjectsID"`
	Period  *GradingPeriodModel `json:"period,omitempty" gorm:"foreignKey:CourseLoadsPeriodID;references:GradingPeriodsID"`

	Units []CourseUnitModel `json:"units,omitempty" gorm:"foreignKey:CourseUnitsCourseLoadID;references:CourseLoadsID"`
}

func (CourseLoadModel) TableName() string { return "course_loads" }

func (m *CourseLoadModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseLoadsID == uuid.Nil {
		m.CourseLoadsID = uuid.New()
	}
	return nil
}
