package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	leaderboardRoute "iqro_backend/internals/features/progress/leaderboard/route"
	monitoringRoute "iqro_backend/internals/features/progress/monitoring/route"
	pointRoute "iqro_backend/internals/features/progress/points/route"
)

// /api/u/points, /api/u/leaderboard, /api/u/monitoring
func ProgressUserRoutes(user fiber.Router, db *gorm.DB) {
	pointRoute.PointUserRoutes(user, db)
	leaderboardRoute.LeaderboardUserRoutes(user, db)
	monitoringRoute.MonitoringUserRoutes(user, db)
}
