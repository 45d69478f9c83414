package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/quran/bookmarks/controller"
)

func BookmarkUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBookmarkController(db)

	bm := router.Group("/quran/bookmarks")
	bm.Get("/", ctrl.List)
	bm.Post("/", ctrl.Create)
	bm.Patch("/:id", ctrl.Update)
	bm.Delete("/:id", ctrl.Delete)
}
