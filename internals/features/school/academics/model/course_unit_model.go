// file: internals/features/school/academics/model/course_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseUnitModel representa la tabla `course_units`.
// Los pesos de las unidades de una carga deberían sumar 100;
// no se valida al escribir, el agregador normaliza con los pesos
// que sí tienen calificación.
type CourseUnitModel struct {
	CourseUnitsID           uuid.UUID `json:"course_units_id" gorm:"column:course_units_id;type:uuid;primaryKey"`
	CourseUnitsCourseLoadID uuid.UUID `json:"course_units_course_load_id" gorm:"column:course_units_course_load_id;type:uuid;not null;index:idx_course_units_load;uniqueIndex:uq_course_units_key,priority:1"`

	CourseUnitsLabel         string `json:"course_units_label" gorm:"column:course_units_label;type:varchar(80);not null"`
	CourseUnitsOrderIndex    int    `json:"course_units_order_index" gorm:"column:course_units_order_index;not null;uniqueIndex:uq_course_units_key,priority:2"`
	CourseUnitsWeightPercent int    `json:"course_units_weight_percent" gorm:"column:course_units_weight_percent;not null;default:0"`

	CourseUnitsCreatedAt time.Time      `json:"course_units_created_at" gorm:"column:course_units_created_at;not null;autoCreateTime"`
	CourseUnitsUpdatedAt time.Time      `json:"course_units_updated_at" gorm:"column:course_units_updated_at;not null;autoUpdateTime"`
	CourseUnitsDeletedAt gorm.DeletedAt `json:"course_units_deleted_at" gorm:"column:course_units_deleted_at;index"`
}

func (CourseUnitModel) TableName() string { return "course_units" }

func (m *CourseUnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseUnitsID == uuid.Nil {
		m.CourseUnitsID = uuid.New()
	}
	return nil
}
