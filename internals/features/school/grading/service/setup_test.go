package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	attendanceModel "controlescolar_backend/internals/features/school/attendance/model"
	model "controlescolar_backend/internals/features/school/grading/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&academicsModel.GradingPeriodModel{},
		&academicsModel.CareerModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.StudentModel{},
		&academicsModel.GroupModel{},
		&academicsModel.CourseLoadModel{},
		&academicsModel.CourseUnitModel{},
		&attendanceModel.ClassSessionModel{},
		&attendanceModel.AttendanceRecordModel{},
		&model.ActivityModel{},
		&model.ActivitySubmissionModel{},
		&model.EnrollmentModel{},
		&model.UnitGradeModel{},
	))
	return db
}

// gradingFixture arma una carga académica con dos unidades 50/50 y un
// alumno inscribible.
type gradingFixture struct {
	Period  academicsModel.GradingPeriodModel
	Career  academicsModel.CareerModel
	Subject academicsModel.SubjectModel
	Group   academicsModel.GroupModel
	Load    academicsModel.CourseLoadModel
	Units   []academicsModel.CourseUnitModel
	Student academicsModel.StudentModel
}

func newGradingFixture(t *testing.T, db *gorm.DB) gradingFixture {
	t.Helper()
	f := gradingFixture{
		Period:  academicsModel.GradingPeriodModel{GradingPeriodsName: "2026-1"},
		Career:  academicsModel.CareerModel{CareersName: "Enfermería"},
		Subject: academicsModel.SubjectModel{SubjectsName: "Anatomía"},
		Student: academicsModel.StudentModel{StudentsFullName: "Ana López", StudentsControlNumber: "2026-0001"},
	}
	require.NoError(t, db.Create(&f.Period).Error)
	require.NoError(t, db.Create(&f.Career).Error)
	require.NoError(t, db.Create(&f.Subject).Error)
	require.NoError(t, db.Create(&f.Student).Error)

	f.Group = academicsModel.GroupModel{
		GroupsCareerID:   f.Career.CareersID,
		GroupsPeriodID:   f.Period.GradingPeriodsID,
		GroupsGradeLevel: 1,
		GroupsLetter:     "A",
	}
	require.NoError(t, db.Create(&f.Group).Error)

	f.Load = academicsModel.CourseLoadModel{
		CourseLoadsGroupID:   f.Group.GroupsID,
		CourseLoadsSubjectID: f.Subject.SubjectsID,
		CourseLoadsPeriodID:  f.Period.GradingPeriodsID,
	}
	require.NoError(t, db.Create(&f.Load).Error)

	for i, label := range []string{"Unidad 1", "Unidad 2"} {
		unit := academicsModel.CourseUnitModel{
			CourseUnitsCourseLoadID:  f.Load.CourseLoadsID,
			CourseUnitsLabel:         label,
			CourseUnitsOrderIndex:    i + 1,
			CourseUnitsWeightPercent: 50,
		}
		require.NoError(t, db.Create(&unit).Error)
		f.Units = append(f.Units, unit)
	}
	return f
}

// addAttendance crea n sesiones y registra al alumno con el estatus
// indicado en cada una.
func (f *gradingFixture) addAttendance(t *testing.T, db *gorm.DB, n int, status string) {
	t.Helper()
	base := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	var last int64
	require.NoError(t, db.Model(&attendanceModel.ClassSessionModel{}).Count(&last).Error)
	for i := 0; i < n; i++ {
		day := base.AddDate(0, 0, int(last)+i)
		session := attendanceModel.ClassSessionModel{
			ClassSessionsCareerID:    f.Career.CareersID,
			ClassSessionsGroupID:     f.Group.GroupsID,
			ClassSessionsPeriodID:    f.Period.GradingPeriodsID,
			ClassSessionsSubjectName: f.Subject.SubjectsName,
			ClassSessionsDate:        day,
		}
		require.NoError(t, db.Create(&session).Error)
		record := attendanceModel.AttendanceRecordModel{
			AttendanceRecordsStudentID: f.Student.StudentsID,
			AttendanceRecordsSessionID: session.ClassSessionsID,
			AttendanceRecordsDate:      day,
			AttendanceRecordsStatus:    status,
		}
		require.NoError(t, db.Create(&record).Error)
	}
}

func (f *gradingFixture) addActivity(t *testing.T, db *gorm.DB, unitIndex int, category string, maxScore float64) model.ActivityModel {
	t.Helper()
	activity := model.ActivityModel{
		ActivitiesCourseLoadID: f.Load.CourseLoadsID,
		ActivitiesUnitIndex:    unitIndex,
		ActivitiesCategory:     category,
		ActivitiesTitle:        "Actividad",
		ActivitiesMaxScore:     maxScore,
		ActivitiesIsActive:     true,
	}
	require.NoError(t, db.Create(&activity).Error)
	return activity
}

func (f *gradingFixture) submit(t *testing.T, db *gorm.DB, activityID uuid.UUID, score float64) {
	t.Helper()
	sub := model.ActivitySubmissionModel{
		ActivitySubmissionsActivityID: activityID,
		ActivitySubmissionsStudentID:  f.Student.StudentsID,
		ActivitySubmissionsScore:      score,
	}
	require.NoError(t, db.Create(&sub).Error)
}
