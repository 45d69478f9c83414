package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	pointController "iqro_backend/internals/features/progress/points/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func PointUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := pointController.NewPointController(db)

	points := router.Group("/points",
		authMiddleware.OnlyRoles(constants.RoleErrorSiswa("melihat poin"), constants.SiswaOnly...),
	)
	points.Get("/mine", ctrl.GetMine)
	points.Get("/mine/logs", ctrl.GetMyLogs)
}
