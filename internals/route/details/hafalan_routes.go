package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	labelRoute "iqro_backend/internals/features/hafalan/labels/route"
	setoranRoute "iqro_backend/internals/features/hafalan/setoran/route"
	quizRoute "iqro_backend/internals/features/quiz/quizzes/route"
	"iqro_backend/internals/helpers/storage"
)

// /api/u/setoran, /api/u/labels, /api/u/quizzes
func HafalanUserRoutes(user fiber.Router, db *gorm.DB, up storage.Uploader) {
	setoranRoute.SetoranUserRoutes(user, db, up)
	labelRoute.LabelUserRoutes(user, db)
	quizRoute.QuizUserRoutes(user, db)
}
