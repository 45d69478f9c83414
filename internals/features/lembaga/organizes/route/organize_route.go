package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	organizeController "iqro_backend/internals/features/lembaga/organizes/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

// Base: /api/u/organizes
func OrganizeUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := organizeController.NewOrganizeController(db)
	onlyGuru := authMiddleware.OnlyRoles(constants.RoleErrorGuru("kelola kelas"), constants.GuruOnly...)
	joinRoles := authMiddleware.OnlyRoles(constants.RoleErrorJoin("gabung kelas"), constants.JoinRoles...)

	org := router.Group("/organizes")

	// siswa & ortu
	org.Post("/join", joinRoles, ctrl.Join)
	org.Post("/leave", joinRoles, ctrl.Leave)

	// guru
	org.Post("/", onlyGuru, ctrl.Create)
	org.Get("/mine", onlyGuru, ctrl.GetMine)
	org.Patch("/mine", onlyGuru, ctrl.UpdateMine)
	org.Post("/mine/regenerate-code", onlyGuru, ctrl.RegenerateCode)
	org.Get("/mine/students", onlyGuru, ctrl.ListStudents)
	org.Delete("/mine/students/:id", onlyGuru, ctrl.RemoveStudent)
	org.Get("/mine/report.xlsx", onlyGuru, ctrl.ExportReport)
}
