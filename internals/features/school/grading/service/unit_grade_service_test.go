package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	attendanceModel "controlescolar_backend/internals/features/school/attendance/model"
	model "controlescolar_backend/internals/features/school/grading/model"
)

func ptr(v float64) *float64 { return &v }

func findEnrollment(t *testing.T, db *gorm.DB, f gradingFixture) model.EnrollmentModel {
	t.Helper()
	var e model.EnrollmentModel
	require.NoError(t, db.First(&e,
		"enrollments_student_id = ? AND enrollments_course_load_id = ?",
		f.Student.StudentsID, f.Load.CourseLoadsID).Error)
	return e
}

// Flujo completo: tareas 80, examen 90, conducta 100 con asistencia
// perfecta → 80*0.40 + 90*0.50 + 100*0.10 = 87 → 8.70.
func TestRecomputeFullFlow(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 10, attendanceModel.AttendancePresente)
	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 80)

	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	enrollment := findEnrollment(t, db, f)

	grade, err := svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, ptr(90), ptr(100))
	require.NoError(t, err)

	require.NotNil(t, grade.UnitGradesUnitAverage)
	assert.InDelta(t, 8.70, *grade.UnitGradesUnitAverage, 1e-9)
	assert.InDelta(t, 80.0, grade.UnitGradesTaskScore, 1e-9)
	assert.True(t, grade.UnitGradesExamEligible)
	assert.InDelta(t, 100.0, grade.UnitGradesAttendancePct, 1e-9)
}

// El promedio final de la inscripción se refresca en el mismo
// recálculo de unidad, no hasta el cierre de periodo.
func TestRecomputeRefreshesFinalAverage(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 10, attendanceModel.AttendancePresente)
	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 80)

	// Sólo tareas: 80*0.40 = 32 → unidad 3.20; con la unidad 2 sin
	// calcular, el promedio final también queda en 3.20.
	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)

	enrollment := findEnrollment(t, db, f)
	require.NotNil(t, enrollment.EnrollmentsFinalAverage)
	assert.InDelta(t, 3.20, *enrollment.EnrollmentsFinalAverage, 1e-9)

	// Capturar examen y conducta mueve el promedio final en la misma
	// operación.
	grade, err := svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, ptr(90), ptr(100))
	require.NoError(t, err)
	require.NotNil(t, grade.UnitGradesUnitAverage)
	assert.InDelta(t, 8.70, *grade.UnitGradesUnitAverage, 1e-9)

	enrollment = findEnrollment(t, db, f)
	require.NotNil(t, enrollment.EnrollmentsFinalAverage)
	assert.InDelta(t, 8.70, *enrollment.EnrollmentsFinalAverage, 1e-9)
}

// El recálculo crea la inscripción por materia de forma perezosa y es
// idempotente: una sola fila de calificación, mismo promedio.
func TestRecomputeLazyEnrollmentAndIdempotence(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 5, attendanceModel.AttendancePresente)
	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 70)

	first, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	second, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)

	assert.Equal(t, first.UnitGradesID, second.UnitGradesID)
	require.NotNil(t, second.UnitGradesUnitAverage)
	assert.InDelta(t, *first.UnitGradesUnitAverage, *second.UnitGradesUnitAverage, 1e-9)

	var gradeCount, enrollmentCount int64
	require.NoError(t, db.Model(&model.UnitGradeModel{}).Count(&gradeCount).Error)
	require.NoError(t, db.Model(&model.EnrollmentModel{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, gradeCount)
	assert.EqualValues(t, 1, enrollmentCount)
}

// Sin derecho a examen la suma ponderada no se reescala: tareas y
// conducta perfectas topan en 5.00.
func TestRecomputeNoRescaleWithoutExamRight(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	// 50% de asistencia: sin derecho.
	f.addAttendance(t, db, 2, attendanceModel.AttendancePresente)
	f.addAttendance(t, db, 2, attendanceModel.AttendanceAusente)

	a1 := f.addActivity(t, db, 1, model.CategoryTarea, 100)
	f.submit(t, db, a1.ActivitiesID, 100)

	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	enrollment := findEnrollment(t, db, f)

	grade, err := svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, nil, ptr(100))
	require.NoError(t, err)

	assert.False(t, grade.UnitGradesExamEligible)
	assert.Nil(t, grade.UnitGradesExamScore)
	require.NotNil(t, grade.UnitGradesUnitAverage)
	assert.InDelta(t, 5.00, *grade.UnitGradesUnitAverage, 1e-9)
}

// Capturar examen sin derecho es un rechazo explícito, no un descarte
// en silencio.
func TestSaveManualScoreRejectsExamWithoutRight(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 1, attendanceModel.AttendancePresente)
	f.addAttendance(t, db, 1, attendanceModel.AttendanceAusente)

	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	enrollment := findEnrollment(t, db, f)

	_, err = svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, ptr(90), nil)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

// Perder el derecho después de capturar el examen descarta el examen
// guardado en el siguiente recálculo.
func TestRecomputeDropsStoredExamWhenRightIsLost(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 4, attendanceModel.AttendancePresente)
	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	enrollment := findEnrollment(t, db, f)

	grade, err := svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, ptr(90), nil)
	require.NoError(t, err)
	require.NotNil(t, grade.UnitGradesExamScore)

	// Seis ausencias: 4/10 = 40%, pierde el derecho.
	f.addAttendance(t, db, 6, attendanceModel.AttendanceAusente)

	grade, err = svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	assert.False(t, grade.UnitGradesExamEligible)
	assert.Nil(t, grade.UnitGradesExamScore)
	require.NotNil(t, grade.UnitGradesUnitAverage)
	assert.InDelta(t, 0.0, *grade.UnitGradesUnitAverage, 1e-9)
}

func TestRecomputeUnknownLoadAndUnit(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	_, err := svc.Recompute(db, f.Student.StudentsID, uuid.New(), 1)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	_, err = svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 9)
	require.Error(t, err)
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestSaveManualScoreValidatesRange(t *testing.T) {
	db := openTestDB(t)
	f := newGradingFixture(t, db)
	svc := NewUnitGradeService()

	f.addAttendance(t, db, 1, attendanceModel.AttendancePresente)
	_, err := svc.Recompute(db, f.Student.StudentsID, f.Load.CourseLoadsID, 1)
	require.NoError(t, err)
	enrollment := findEnrollment(t, db, f)

	_, err = svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, ptr(120), nil)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	_, err = svc.SaveManualScore(db, enrollment.EnrollmentsID, 1, nil, ptr(-1))
	require.Error(t, err)
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}
