// file: internals/features/school/promotion/model/promotion_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PromotionRunModel representa la tabla `promotion_runs`: la bitácora
// persistida de cada cierre de periodo, con los errores por alumno en
// una columna JSON.
type PromotionRunModel struct {
	PromotionRunsID           uuid.UUID `json:"promotion_runs_id" gorm:"column:promotion_runs_id;type:uuid;primaryKey"`
	PromotionRunsPeriodID     uuid.UUID `json:"promotion_runs_period_id" gorm:"column:promotion_runs_period_id;type:uuid;not null;index:idx_promotion_runs_period"`
	PromotionRunsNextPeriodID uuid.UUID `json:"promotion_runs_next_period_id" gorm:"column:promotion_runs_next_period_id;type:uuid;not null"`

	PromotionRunsPromoted int `json:"promotion_runs_promoted" gorm:"column:promotion_runs_promoted;not null;default:0"`
	PromotionRunsRetained int `json:"promotion_runs_retained" gorm:"column:promotion_runs_retained;not null;default:0"`

	PromotionRunsErrors datatypes.JSON `json:"promotion_runs_errors" gorm:"column:promotion_runs_errors;type:jsonb"`

	PromotionRunsCreatedAt time.Time `json:"promotion_runs_created_at" gorm:"column:promotion_runs_created_at;not null;autoCreateTime"`
}

func (PromotionRunModel) TableName() string { return "promotion_runs" }

func (m *PromotionRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.PromotionRunsID == uuid.Nil {
		m.PromotionRunsID = uuid.New()
	}
	return nil
}
