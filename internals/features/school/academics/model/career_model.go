// file: internals/features/school/academics/model/career_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareerModel representa la tabla `careers`
type CareerModel struct {
	CareersID   uuid.UUID `json:"careers_id" gorm:"column:careers_id;type:uuid;primaryKey"`
	CareersName string    `json:"careers_name" gorm:"column:careers_name;type:varchar(120);not null;uniqueIndex:uq_careers_name"`

	CareersCreatedAt time.Time      `json:"careers_created_at" gorm:"column:careers_created_at;not null;autoCreateTime"`
	CareersUpdatedAt time.Time      `json:"careers_updated_at" gorm:"column:careers_updated_at;not null;autoUpdateTime"`
	CareersDeletedAt gorm.DeletedAt `json:"careers_deleted_at" gorm:"column:careers_deleted_at;index"`
}

func (CareerModel) TableName() string { return "careers" }

func (m *CareerModel) BeforeCreate(tx *gorm.DB) error {
	if m.CareersID == uuid.Nil {
		m.CareersID = uuid.New()
	}
	return nil
}
