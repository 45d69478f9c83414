// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"iqro_backend/internals/configs"
)

var defaultOrigins = []string{
	"http://localhost:8081", // expo web
	"http://localhost:19006",
	"http://localhost:5173",
}

// CorsMiddleware membuat middleware CORS; origin tambahan via CORS_ALLOW_ORIGINS (dipisah koma)
func CorsMiddleware() fiber.Handler {
	origins := append([]string{}, defaultOrigins...)
	for _, o := range strings.Split(configs.GetEnv("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: true,
	})
}
