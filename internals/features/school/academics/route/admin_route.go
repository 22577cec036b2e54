// file: internals/features/school/academics/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "controlescolar_backend/internals/features/school/academics/controller"
)

func AcademicsAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctl := academicsController.NewAcademicsController(db)

	router.Post("/periods", ctl.CreatePeriod)
	router.Get("/periods", ctl.ListPeriods)
	router.Post("/careers", ctl.CreateCareer)
	router.Post("/subjects", ctl.CreateSubject)
	router.Post("/students", ctl.CreateStudent)
	router.Post("/groups", ctl.CreateGroup)
	router.Post("/course-loads", ctl.CreateCourseLoad)
	router.Post("/course-units", ctl.CreateCourseUnit)
	router.Get("/course-units", ctl.ListCourseUnits)
}
