package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/admin/controller"
)

// AdminRoutes dipasang di grup /api/a yang sudah dibatasi role admin.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdminController(db)

	admin.Get("/stats", ctrl.Stats)
	admin.Get("/users", ctrl.ListUsers)
	admin.Patch("/users/:id/active", ctrl.SetActive)
	admin.Get("/organizes", ctrl.ListOrganizes)
}
