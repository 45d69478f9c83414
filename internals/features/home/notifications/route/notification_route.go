package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/home/notifications/controller"
	"iqro_backend/internals/helpers/mailer"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db, nil)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.List)
	notification.Get("/unread-count", ctrl.UnreadCount)
	notification.Patch("/read-all", ctrl.MarkAllRead)
	notification.Patch("/:id/read", ctrl.MarkRead)
}

// Dipasang di bawah group admin (/api/a)
func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB, mail mailer.Mailer) {
	ctrl := controller.NewNotificationController(db, mail)

	notification := admin.Group("/notifications")
	notification.Post("/", ctrl.Create)
	notification.Post("/daily-reminder", ctrl.TriggerDailyReminder)
}
