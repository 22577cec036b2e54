// file: internals/features/school/academics/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupModel representa la tabla `groups`.
// (carrera, nivel, letra, periodo) identifica al grupo; la promoción
// resuelve o crea el grupo destino con esta llave.
type GroupModel struct {
	GroupsID       uuid.UUID `json:"groups_id" gorm:"column:groups_id;type:uuid;primaryKey"`
	GroupsCareerID uuid.UUID `json:"groups_career_id" gorm:"column:groups_career_id;type:uuid;not null;index:idx_groups_career;uniqueIndex:uq_groups_key,priority:1"`
	GroupsPeriodID uuid.UUID `json:"groups_period_id" gorm:"column:groups_period_id;type:uuid;not null;index:idx_groups_period;uniqueIndex:uq_groups_key,priority:4"`

	GroupsGradeLevel int    `json:"groups_grade_level" gorm:"column:groups_grade_level;not null;default:1;uniqueIndex:uq_groups_key,priority:2"`
	GroupsLetter     string `json:"groups_letter" gorm:"column:groups_letter;type:varchar(4);not null;default:'A';uniqueIndex:uq_groups_key,priority:3"`

	GroupsCreatedAt time.Time      `json:"groups_created_at" gorm:"column:groups_created_at;not null;autoCreateTime"`
	GroupsUpdatedAt time.Time      `json:"groups_updated_at" gorm:"column:groups_updated_at;not null;autoUpdateTime"`
	GroupsDeletedAt gorm.DeletedAt `json:"groups_deleted_at" gorm:"column:groups_deleted_at;index"`

	Career *CareerModel        `json:"career,omitempty" gorm:"foreignKey:GroupsCareerID;references:CareersID"`
	Period *GradingPeriodModel `json:"period,omitempty" gorm:"foreignKey:GroupsPeriodID;references:GradingPeriodsID"`
}

func (GroupModel) TableName() string { return "groups" }

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupsID == uuid.Nil {
		m.GroupsID = uuid.New()
	}
	return nil
}
