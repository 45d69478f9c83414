package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/progress/leaderboard/controller"
)

func LeaderboardUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLeaderboardController(db)
	router.Get("/leaderboard", ctrl.Get)
}
