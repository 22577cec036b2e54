// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"controlescolar_backend/internals/configs"
	schoolMiddleware "controlescolar_backend/internals/middlewares/auth_school"

	gradingService "controlescolar_backend/internals/features/school/grading/service"
	routeDetails "controlescolar_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// Dispatcher compartido: las entregas de tareas publican aquí y el
	// servicio de calificaciones recalcula la unidad afectada.
	dispatcher := gradingService.NewDispatcher()

	// ===================== HEALTH =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== GROUPS =====================

	// PRIVATE (docentes) → JWT obligatorio
	log.Println("[INFO] Setting up PRIVATE (teacher) group...")
	private := app.Group("/api/u",
		schoolMiddleware.AuthJWT(schoolMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ADMIN (servicios escolares) → JWT + rol
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		schoolMiddleware.AuthJWT(schoolMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		schoolMiddleware.RequireRole("admin", "servicios_escolares"),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting School teacher routes...")
	routeDetails.SchoolTeacherRoutes(private, db, dispatcher)

	log.Println("[INFO] Mounting School admin routes...")
	routeDetails.SchoolAdminRoutes(admin, db)
}
