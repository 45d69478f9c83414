package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookmarkRoute "iqro_backend/internals/features/quran/bookmarks/route"
	userRoute "iqro_backend/internals/features/users/user/route"
	"iqro_backend/internals/helpers/storage"
)

// /api/u/profile, /api/u/children, /api/u/quran/bookmarks
func UserRoutes(user fiber.Router, db *gorm.DB, up storage.Uploader) {
	userRoute.UserRoutes(user, db, up)
	bookmarkRoute.BookmarkUserRoutes(user, db)
}
