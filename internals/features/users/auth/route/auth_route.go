// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iqro_backend/internals/features/users/auth/controller"
	rateLimiter "iqro_backend/internals/middlewares"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(router fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	protected := authMiddleware.AuthMiddleware(db)

	baseAuth := router.Group("/auth")

	// 🔓 Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// 🔐 Butuh access token
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Post("/change-password", protected, authController.ChangePassword)
	baseAuth.Get("/me", protected, authController.Me)
}
