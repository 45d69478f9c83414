package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/lembaga/attendance/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func AttendanceUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	att := router.Group("/attendance")
	att.Put("/",
		authMiddleware.OnlyRoles(constants.RoleErrorGuru("absensi"), constants.GuruOnly...),
		ctrl.Upsert)
	att.Get("/today/:student_id", ctrl.GetToday)
	att.Get("/student/:student_id", ctrl.GetHistory)
}
