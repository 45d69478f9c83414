// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/helpers/mailer"
	"iqro_backend/internals/helpers/storage"
	authMiddleware "iqro_backend/internals/middlewares/auth"
	routeDetails "iqro_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, up storage.Uploader, mail mailer.Mailer) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa token
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("/public")

	// PRIVATE (USER) → semua role yang login
	log.Println("[INFO] Setting up PRIVATE group...")
	user := api.Group("/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → login + role admin
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("panel admin"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomePublicRoutes(public)
	routeDetails.HomePrivateRoutes(user, db)
	routeDetails.HomeAdminRoutes(admin, db, mail)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(user, db, up)

	log.Println("[INFO] Mounting Lembaga routes...")
	routeDetails.LembagaUserRoutes(user, db)
	routeDetails.LembagaAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Hafalan routes...")
	routeDetails.HafalanUserRoutes(user, db, up)

	log.Println("[INFO] Mounting Progress routes...")
	routeDetails.ProgressUserRoutes(user, db)
}
