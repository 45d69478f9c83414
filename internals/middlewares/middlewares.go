package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"iqro_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, recover paling luar supaya panic di middleware lain ikut tertangkap
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(MetricsMiddleware())
	app.Use(GlobalRateLimiter())
}
