// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "controlescolar_backend/internals/features/school/academics/route"
	attendanceRoute "controlescolar_backend/internals/features/school/attendance/route"
	gradingRoute "controlescolar_backend/internals/features/school/grading/route"
	gradingService "controlescolar_backend/internals/features/school/grading/service"
	promotionRoute "controlescolar_backend/internals/features/school/promotion/route"
)

// SchoolTeacherRoutes cuelga las rutas de docentes (captura de
// asistencia, actividades, entregas y calificaciones).
func SchoolTeacherRoutes(router fiber.Router, db *gorm.DB, dispatcher *gradingService.Dispatcher) {
	attendanceRoute.AttendanceRoutes(router, db)
	gradingRoute.GradingRoutes(router, db, dispatcher)
}

// SchoolAdminRoutes cuelga las rutas administrativas (catálogo y cierre
// de periodo).
func SchoolAdminRoutes(router fiber.Router, db *gorm.DB) {
	academicsRoute.AcademicsAdminRoutes(router, db)
	promotionRoute.PromotionAdminRoutes(router, db)
}
