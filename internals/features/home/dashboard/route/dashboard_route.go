package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/home/dashboard/controller"
)

func DashboardUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	router.Get("/home", ctrl.Get)
}
