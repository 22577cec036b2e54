package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "controlescolar_backend/internals/features/school/grading/model"
)

// Sin actividades activas la categoría vale 0, no 100.
func TestCategoryScoreNoActivities(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	score, err := NewCategoryScorer().Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)
	assert.Zero(t, score)
}

// Una entrega faltante cuenta como 0 de esa actividad.
func TestCategoryScoreMissingSubmissionIsZero(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 100)

	score, err := NewCategoryScorer().Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, score, 1e-9)
}

// Máximos distintos: la suma de obtenidos se normaliza contra la suma
// de máximos, no por actividad.
func TestCategoryScoreMixedMaxScores(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 60)
	a2 := f.addActivity(t, db, 1, model.CategoryTarea, 40)
	f.submit(t, db, a1.ActivitiesID, 45)
	f.submit(t, db, a2.ActivitiesID, 30)

	score, err := NewCategoryScorer().Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, score, 1e-9)
}

// Subir la puntuación obtenida de una entrega nunca baja el puntaje de
// la categoría.
func TestCategoryScoreMonotonicity(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	scorer := NewCategoryScorer()

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 60)
	a2 := f.addActivity(t, db, 1, model.CategoryTarea, 40)
	f.submit(t, db, a1.ActivitiesID, 45)
	f.submit(t, db, a2.ActivitiesID, 10)

	before, err := scorer.Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)

	for _, bump := range []float64{20, 30, 40} {
		require.NoError(t, db.Model(&model.ActivitySubmissionModel{}).
			Where("activity_submissions_activity_id = ? AND activity_submissions_student_id = ?",
				a2.ActivitiesID, f.Student.StudentsID).
			Update("activity_submissions_score", bump).Error)

		after, err := scorer.Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after, before)
		before = after
	}
}

// Las actividades desactivadas y las de otra unidad o categoría no
// entran al cálculo.
func TestCategoryScoreScopedToUnitAndCategory(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 80)

	other := f.addActivity(t, db, 2, model.CategoryTarea, 100)
	f.submit(t, db, other.ActivitiesID, 10)
	conduct := f.addActivity(t, db, 1, model.CategoryConducta, 100)
	f.submit(t, db, conduct.ActivitiesID, 10)

	inactive := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	require.NoError(t, db.Model(&model.ActivityModel{}).
		Where("activities_id = ?", inactive.ActivitiesID).
		Update("activities_is_active", false).Error)

	score, err := NewCategoryScorer().Score(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestCategoryBreakdown(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.addActivity(t, db, 1, model.CategoryTarea, 50)
	f.submit(t, db, a1.ActivitiesID, 90)

	items, err := NewCategoryScorer().Breakdown(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Submitted)
	assert.InDelta(t, 90.0, items[0].Obtained, 1e-9)
	assert.False(t, items[1].Submitted)
	assert.Zero(t, items[1].Obtained)
}

func TestCategoryPointsAppliesWeight(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 80)

	points, err := NewCategoryScorer().Points(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1, model.CategoryTarea, WeightTarea)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, points, 1e-9)
}
