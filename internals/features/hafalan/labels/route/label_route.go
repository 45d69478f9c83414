package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/hafalan/labels/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func LabelUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLabelController(db)

	labels := router.Group("/labels")
	labels.Get("/mine",
		authMiddleware.OnlyRoles(constants.RoleErrorSiswa("melihat label"), constants.SiswaOnly...),
		ctrl.GetMine)
	labels.Get("/student/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorMonitor("label siswa"), constants.MonitorRoles...),
		ctrl.GetByStudent)
	labels.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorGuru("memberi label"), constants.GuruOnly...),
		ctrl.Create)
}
