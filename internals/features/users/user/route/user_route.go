package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	userController "iqro_backend/internals/features/users/user/controller"
	"iqro_backend/internals/helpers/storage"
	authMiddleware "iqro_backend/internals/middlewares/auth"
)

// Base: /api/u (sudah lewat AuthMiddleware)
func UserRoutes(router fiber.Router, db *gorm.DB, up storage.Uploader) {
	profileCtrl := userController.NewUserProfileController(db, up)
	childrenCtrl := userController.NewParentChildrenController(db)

	profile := router.Group("/profile")
	profile.Get("/", profileCtrl.GetProfile)
	profile.Patch("/", profileCtrl.UpdateProfile)
	profile.Post("/avatar", profileCtrl.UploadAvatar)

	children := router.Group("/children",
		authMiddleware.OnlyRoles(constants.RoleErrorOrtu("menautkan anak"), constants.RoleOrtu),
	)
	children.Post("/", childrenCtrl.LinkChild)
	children.Get("/", childrenCtrl.ListChildren)
	children.Delete("/:id", childrenCtrl.UnlinkChild)
}
