package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/progress/monitoring/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func MonitoringUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMonitoringController(db)

	mon := router.Group("/monitoring",
		authMiddleware.OnlyRoles(constants.RoleErrorMonitor("monitoring"), constants.MonitorRoles...),
	)
	mon.Get("/students", ctrl.ListStudents)
	mon.Get("/students/:id", ctrl.GetStudent)
}
