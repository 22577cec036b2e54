package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	model "controlescolar_backend/internals/features/school/grading/model"
)

func seedEnrollment(t *testing.T, db *gorm.DB, f gradingFixture) model.EnrollmentModel {
	t.Helper()
	loadID := f.Load.CourseLoadsID
	groupID := f.Group.GroupsID
	e := model.EnrollmentModel{
		EnrollmentsStudentID:    f.Student.StudentsID,
		EnrollmentsPeriodID:     f.Period.GradingPeriodsID,
		EnrollmentsGroupID:      &groupID,
		EnrollmentsCourseLoadID: &loadID,
		EnrollmentsStatus:       model.EnrollmentCursando,
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedUnitGrade(t *testing.T, db *gorm.DB, f gradingFixture, e model.EnrollmentModel, unitIndex int, avg *float64) {
	t.Helper()
	g := model.UnitGradeModel{
		UnitGradesEnrollmentID: e.EnrollmentsID,
		UnitGradesStudentID:    f.Student.StudentsID,
		UnitGradesCourseUnitID: f.Units[unitIndex-1].CourseUnitsID,
		UnitGradesUnitAverage:  avg,
	}
	require.NoError(t, db.Create(&g).Error)
}

// Sólo la unidad calificada entra al denominador: una 50/50 con una
// unidad en 8.0 y la otra sin calcular promedia 8.00, no 4.00.
func TestFinalAverageIgnoresUngradedUnits(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	e := seedEnrollment(t, db, f)
	seedUnitGrade(t, db, f, e, 1, ptr(8.0))

	final, err := NewFinalAverageService().Recompute(db, &e)
	require.NoError(t, err)
	assert.InDelta(t, 8.00, final, 1e-9)

	var stored model.EnrollmentModel
	require.NoError(t, db.First(&stored, "enrollments_id = ?", e.EnrollmentsID).Error)
	require.NotNil(t, stored.EnrollmentsFinalAverage)
	assert.InDelta(t, 8.00, *stored.EnrollmentsFinalAverage, 1e-9)
}

func TestFinalAverageWeightedCombination(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	e := seedEnrollment(t, db, f)
	seedUnitGrade(t, db, f, e, 1, ptr(8.0))
	seedUnitGrade(t, db, f, e, 2, ptr(9.0))

	final, err := NewFinalAverageService().Recompute(db, &e)
	require.NoError(t, err)
	assert.InDelta(t, 8.50, final, 1e-9)
}

// Sin ninguna unidad calculada el promedio es 0 y se persiste.
func TestFinalAverageNoGradedUnits(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	e := seedEnrollment(t, db, f)
	seedUnitGrade(t, db, f, e, 1, nil)

	final, err := NewFinalAverageService().Recompute(db, &e)
	require.NoError(t, err)
	assert.Zero(t, final)

	var stored model.EnrollmentModel
	require.NoError(t, db.First(&stored, "enrollments_id = ?", e.EnrollmentsID).Error)
	require.NotNil(t, stored.EnrollmentsFinalAverage)
	assert.Zero(t, *stored.EnrollmentsFinalAverage)
}

// La inscripción general del periodo (sin carga) no tiene promedio.
func TestFinalAverageGeneralEnrollment(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	e := model.EnrollmentModel{
		EnrollmentsStudentID: f.Student.StudentsID,
		EnrollmentsPeriodID:  f.Period.GradingPeriodsID,
		EnrollmentsStatus:    model.EnrollmentCursando,
	}
	require.NoError(t, db.Create(&e).Error)

	final, err := NewFinalAverageService().Recompute(db, &e)
	require.NoError(t, err)
	assert.Zero(t, final)
	assert.Nil(t, e.EnrollmentsFinalAverage)
}
