package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardRoute "iqro_backend/internals/features/home/dashboard/route"
	notificationRoute "iqro_backend/internals/features/home/notifications/route"
	prayerRoute "iqro_backend/internals/features/home/prayer/route"
	"iqro_backend/internals/helpers/mailer"
)

// ✅ Tanpa token
// Contoh akses: /api/public/prayer-times
func HomePublicRoutes(public fiber.Router) {
	prayerRoute.PrayerPublicRoutes(public)
}

// ✅ User login
// Contoh akses: /api/u/home, /api/u/notifications
func HomePrivateRoutes(user fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardUserRoutes(user, db)
	notificationRoute.NotificationUserRoutes(user, db)
}

// ✅ Admin
// Contoh akses: /api/a/notifications/daily-reminder
func HomeAdminRoutes(admin fiber.Router, db *gorm.DB, mail mailer.Mailer) {
	notificationRoute.NotificationAdminRoutes(admin, db, mail)
}
