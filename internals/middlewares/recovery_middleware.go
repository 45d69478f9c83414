package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"iqro_backend/internals/helpers/reporting"
)

// RecoveryMiddleware menangkap panic, kirim ke Rollbar, lalu fiber mengembalikan 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			reporting.Critical("panic", fmt.Errorf("%v", e), map[string]interface{}{
				"method": c.Method(),
				"path":   c.OriginalURL(),
				"req_id": c.Locals("reqid"),
			})
		},
	})
}
