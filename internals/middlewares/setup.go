package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "controlescolar_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra los middlewares base de la app
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
}
