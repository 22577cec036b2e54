// file: internals/features/school/grading/model/activity_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categorías de calificación
const (
	CategoryTarea    = "tarea"
	CategoryExamen   = "examen"
	CategoryConducta = "conducta"
)

// ActivityModel representa la tabla `activities`:
// un reactivo calificable definido por el docente para
// (carga académica, unidad, categoría).
type ActivityModel struct {
	ActivitiesID           uuid.UUID `json:"activities_id" gorm:"column:activities_id;type:uuid;primaryKey"`
	ActivitiesCourseLoadID uuid.UUID `json:"activities_course_load_id" gorm:"column:activities_course_load_id;type:uuid;not null;index:idx_activities_load_unit,priority:1"`

	ActivitiesUnitIndex int    `json:"activities_unit_index" gorm:"column:activities_unit_index;not null;index:idx_activities_load_unit,priority:2"`
	ActivitiesCategory  string `json:"activities_category" gorm:"column:activities_category;type:varchar(16);not null;default:'tarea';index:idx_activities_category"`

	ActivitiesTitle    string  `json:"activities_title" gorm:"column:activities_title;type:varchar(180);not null"`
	ActivitiesMaxScore float64 `json:"activities_max_score" gorm:"column:activities_max_score;type:numeric(6,2);not null;default:100"`

	ActivitiesIsActive bool       `json:"activities_is_active" gorm:"column:activities_is_active;not null;default:true"`
	ActivitiesDueAt    *time.Time `json:"activities_due_at" gorm:"column:activities_due_at;type:timestamptz"`

	ActivitiesCreatedAt time.Time      `json:"activities_created_at" gorm:"column:activities_created_at;not null;autoCreateTime"`
	ActivitiesUpdatedAt time.Time      `json:"activities_updated_at" gorm:"column:activities_updated_at;not null;autoUpdateTime"`
	ActivitiesDeletedAt gorm.DeletedAt `json:"activities_deleted_at" gorm:"column:activities_deleted_at;index"`
}

func (ActivityModel) TableName() string { return "activities" }

func (m *ActivityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivitiesID == uuid.Nil {
		m.ActivitiesID = uuid.New()
	}
	return nil
}

func ValidCategory(s string) bool {
	switch s {
	case CategoryTarea, CategoryExamen, CategoryConducta:
		return true
	}
	return false
}
