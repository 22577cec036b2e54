// file: internals/features/school/grading/service/category_scorer.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "controlescolar_backend/internals/features/school/grading/model"
	helper "controlescolar_backend/internals/helpers"
)

// CategoryScorer deriva el puntaje 0-100 de una categoría
// (tarea/examen/conducta) a partir de las actividades activas y las
// entregas del alumno. Sólo lectura.
type CategoryScorer struct{}

func NewCategoryScorer() *CategoryScorer {
	return &CategoryScorer{}
}

// ActivityItem es un renglón del desglose por actividad para la vista
// del alumno.
type ActivityItem struct {
	ActivityID uuid.UUID  `json:"activity_id"`
	Title      string     `json:"title"`
	MaxScore   float64    `json:"max_score"`
	Obtained   float64    `json:"obtained"`
	Submitted  bool       `json:"submitted"`
	GradedAt   *time.Time `json:"graded_at,omitempty"`
}

// Score calcula el puntaje de la categoría para
// (alumno, carga, unidad): suma de obtenidos / suma de máximos * 100,
// acotado a [0,100]. Sin actividades activas la categoría vale 0.
// Una entrega faltante cuenta como 0, no como "sin calificar".
func (s *CategoryScorer) Score(tx *gorm.DB, studentID, courseLoadID uuid.UUID, unitIndex int, category string) (float64, error) {
	items, err := s.Breakdown(tx, studentID, courseLoadID, unitIndex, category)
	if err != nil {
		return 0, err
	}
	return scoreFromItems(items), nil
}

// Points aplica el peso de la categoría al puntaje
// (p. ej. 0.40 para tareas) y regresa puntos-sobre-peso.
func (s *CategoryScorer) Points(tx *gorm.DB, studentID, courseLoadID uuid.UUID, unitIndex int, category string, weight float64) (float64, error) {
	score, err := s.Score(tx, studentID, courseLoadID, unitIndex, category)
	if err != nil {
		return 0, err
	}
	return score * weight, nil
}

// Breakdown arma la lista detallada de actividades con el puntaje del
// alumno en cada una.
func (s *CategoryScorer) Breakdown(tx *gorm.DB, studentID, courseLoadID uuid.UUID, unitIndex int, category string) ([]ActivityItem, error) {
	var activities []model.ActivityModel
	if err := tx.
		Where("activities_course_load_id = ? AND activities_unit_index = ? AND activities_category = ? AND activities_is_active = ?",
			courseLoadID, unitIndex, category, true).
		Order("activities_created_at ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return []ActivityItem{}, nil
	}

	activityIDs := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		activityIDs = append(activityIDs, a.ActivitiesID)
	}

	var submissions []model.ActivitySubmissionModel
	if err := tx.
		Where("activity_submissions_student_id = ? AND activity_submissions_activity_id IN ?", studentID, activityIDs).
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	byActivity := make(map[uuid.UUID]model.ActivitySubmissionModel, len(submissions))
	for _, sub := range submissions {
		byActivity[sub.ActivitySubmissionsActivityID] = sub
	}

	items := make([]ActivityItem, 0, len(activities))
	for _, a := range activities {
		item := ActivityItem{
			ActivityID: a.ActivitiesID,
			Title:      a.ActivitiesTitle,
			MaxScore:   a.ActivitiesMaxScore,
		}
		if sub, ok := byActivity[a.ActivitiesID]; ok {
			item.Obtained = sub.ActivitySubmissionsScore
			item.Submitted = true
			item.GradedAt = sub.ActivitySubmissionsGradedAt
		}
		items = append(items, item)
	}
	return items, nil
}

func scoreFromItems(items []ActivityItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var maxPossible, obtained float64
	for _, it := range items {
		maxPossible += it.MaxScore
		obtained += it.Obtained
	}
	if maxPossible <= 0 {
		return 0
	}
	return helper.Clamp(obtained/maxPossible*100, 0, 100)
}
