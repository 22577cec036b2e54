// file: internals/features/school/promotion/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	promotionController "controlescolar_backend/internals/features/school/promotion/controller"
)

func PromotionAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctl := promotionController.NewPromotionController(db)

	router.Post("/periods/:id/close", ctl.ClosePeriod)
	router.Get("/promotion-runs", ctl.ListRuns)
}
