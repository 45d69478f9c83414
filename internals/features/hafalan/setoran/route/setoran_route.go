package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/hafalan/setoran/controller"
	"iqro_backend/internals/helpers/storage"
	"iqro_backend/internals/middlewares"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func SetoranUserRoutes(router fiber.Router, db *gorm.DB, up storage.Uploader) {
	ctrl := controller.NewSetoranController(db, up)
	onlySiswa := authMiddleware.OnlyRoles(constants.RoleErrorSiswa("setoran"), constants.SiswaOnly...)
	onlyGuru := authMiddleware.OnlyRoles(constants.RoleErrorGuru("penilaian setoran"), constants.GuruOnly...)

	setoran := router.Group("/setoran")

	// siswa
	setoran.Post("/", onlySiswa, middlewares.SetoranUploadRateLimiter(), ctrl.Submit)
	setoran.Get("/mine", onlySiswa, ctrl.GetMine)
	setoran.Delete("/:id", onlySiswa, ctrl.Delete)

	// guru
	setoran.Get("/pending", onlyGuru, ctrl.GetPending)
	setoran.Patch("/:id/grade", onlyGuru, ctrl.Grade)

	// pemilik, ortu, guru kelas
	setoran.Get("/:id", ctrl.GetByID)
}
