// file: internals/features/school/attendance/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "controlescolar_backend/internals/features/school/attendance/controller"
)

func AttendanceRoutes(router fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	router.Post("/attendance/sessions", ctl.CreateSession)
	router.Put("/attendance/records", ctl.UpsertRecord)
	router.Get("/attendance/eligibility", ctl.GetEligibility)
}
