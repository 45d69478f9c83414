package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminRoute "iqro_backend/internals/features/admin/route"
	attendanceRoute "iqro_backend/internals/features/lembaga/attendance/route"
	organizeRoute "iqro_backend/internals/features/lembaga/organizes/route"
)

// /api/u/organizes, /api/u/attendance
func LembagaUserRoutes(user fiber.Router, db *gorm.DB) {
	organizeRoute.OrganizeUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)
}

// /api/a/stats, /api/a/users, /api/a/organizes
func LembagaAdminRoutes(admin fiber.Router, db *gorm.DB) {
	adminRoute.AdminRoutes(admin, db)
}
