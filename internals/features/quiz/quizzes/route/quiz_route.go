package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/quiz/quizzes/controller"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

func QuizUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuizController(db)
	onlyGuru := authMiddleware.OnlyRoles(constants.RoleErrorGuru("kelola quiz"), constants.GuruOnly...)
	onlySiswa := authMiddleware.OnlyRoles(constants.RoleErrorSiswa("quiz"), constants.SiswaOnly...)

	quiz := router.Group("/quizzes")

	// guru
	quiz.Get("/manage", onlyGuru, ctrl.ListManage)
	quiz.Post("/import", onlyGuru, ctrl.Import)
	quiz.Post("/", onlyGuru, ctrl.Create)
	quiz.Patch("/:id", onlyGuru, ctrl.Update)
	quiz.Delete("/:id", onlyGuru, ctrl.Delete)

	// siswa
	quiz.Get("/", onlySiswa, ctrl.ListForSiswa)
	quiz.Get("/stats", onlySiswa, ctrl.Stats)
	quiz.Post("/:id/answer", onlySiswa, ctrl.Answer)
}
