// file: internals/features/school/grading/route/teacher_route.go
package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradingController "controlescolar_backend/internals/features/school/grading/controller"
	gradingService "controlescolar_backend/internals/features/school/grading/service"
)

// GradingRoutes registra las rutas del motor de calificaciones y
// suscribe el recálculo al dispatcher: una mutación de entrega de tarea
// publica el evento y el motor recalcula, sin hooks de storage.
func GradingRoutes(router fiber.Router, db *gorm.DB, dispatcher *gradingService.Dispatcher) {
	grades := gradingController.NewGradesController(db, dispatcher)
	activities := gradingController.NewActivityController(db)
	submissions := gradingController.NewSubmissionController(db, dispatcher)

	unitGrades := gradingService.NewUnitGradeService()
	dispatcher.Subscribe(func(ev gradingService.SubmissionChanged) error {
		if _, err := unitGrades.Recompute(db, ev.StudentID, ev.CourseLoadID, ev.UnitIndex); err != nil {
			log.Printf("[GRADING] recálculo por evento falló: alumno=%s carga=%s unidad=%d err=%v",
				ev.StudentID, ev.CourseLoadID, ev.UnitIndex, err)
			return err
		}
		return nil
	})

	router.Get("/course-loads/:id/units/:unit/grades", grades.GetGroupGrades)
	router.Get("/course-loads/:id/units/:unit/students/:studentId/breakdown", grades.GetStudentBreakdown)
	router.Put("/unit-grades", grades.SaveManualScore)
	router.Post("/recalculations", grades.Recalculate)

	router.Post("/activities", activities.Create)
	router.Get("/activities", activities.List)
	router.Put("/activities/:id", activities.Update)
	router.Delete("/activities/:id", activities.Delete)

	router.Put("/submissions", submissions.Upsert)
	router.Delete("/submissions/:id", submissions.Delete)
}
