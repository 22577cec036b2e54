// file: internals/features/school/academics/model/grading_period_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradingPeriodModel representa la tabla `grading_periods`.
// IsClosed es el candado de un solo vuelo para el cierre de periodo:
// la promoción lo voltea de FALSE a TRUE dentro de su transacción.
type GradingPeriodModel struct {
	GradingPeriodsID   uuid.UUID `json:"grading_periods_id" gorm:"column:grading_periods_id;type:uuid;primaryKey"`
	GradingPeriodsName string    `json:"grading_periods_name" gorm:"column:grading_periods_name;type:varchar(80);not null;uniqueIndex:uq_grading_periods_name"`

	GradingPeriodsStartsOn *time.Time `json:"grading_periods_starts_on" gorm:"column:grading_periods_starts_on;type:date"`
	GradingPeriodsEndsOn   *time.Time `json:"grading_periods_ends_on" gorm:"column:grading_periods_ends_on;type:date"`

	GradingPeriodsIsClosed bool `json:"grading_periods_is_closed" gorm:"column:grading_periods_is_closed;not null;default:false"`

	GradingPeriodsCreatedAt time.Time      `json:"grading_periods_created_at" gorm:"column:grading_periods_created_at;not null;autoCreateTime"`
	GradingPeriodsUpdatedAt time.Time      `json:"grading_periods_updated_at" gorm:"column:grading_periods_updated_at;not null;autoUpdateTime"`
	GradingPeriodsDeletedAt gorm.DeletedAt `json:"grading_periods_deleted_at" gorm:"column:grading_periods_deleted_at;index"`
}

func (GradingPeriodModel) TableName() string { return "grading_periods" }

func (m *GradingPeriodModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradingPeriodsID == uuid.Nil {
		m.GradingPeriodsID = uuid.New()
	}
	return nil
}
