package controller

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/users/user/dto"
	"iqro_backend/internals/features/users/user/model"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/storage"
)

type UserProfileController struct {
	DB      *gorm.DB
	Storage storage.Uploader
}

func NewUserProfileController(db *gorm.DB, up storage.Uploader) *UserProfileController {
	return &UserProfileController{DB: db, Storage: up}
}

func (pc *UserProfileController) loadMe(c *fiber.Ctx) (*model.UserModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var user model.UserModel
	if err := pc.DB.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GET /api/u/profile
func (pc *UserProfileController) GetProfile(c *fiber.Ctx) error {
	user, err := pc.loadMe(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profil berhasil diambil", fiber.Map{
		"user":      user,
		"tabs":      constants.TabsForRole(user.Role),
		"type_name": constants.UserTypeNames[user.Type],
	})
}

// PATCH /api/u/profile
func (pc *UserProfileController) UpdateProfile(c *fiber.Ctx) error {
	user, err := pc.loadMe(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	updates := req.ToUpdateMap()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if err := pc.DB.WithContext(c.Context()).Model(user).Updates(updates).Error; err != nil {
		log.Println("[ERROR] Gagal update profil:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", user)
}

// POST /api/u/profile/avatar (multipart: file)
func (pc *UserProfileController) UploadAvatar(c *fiber.Ctx) error {
	user, err := pc.loadMe(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if pc.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan media belum dikonfigurasi")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File avatar wajib diunggah")
	}
	if err := storage.ValidateImage(fh); err != nil {
		return helper.FromFiberError(c, err)
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file")
	}
	defer src.Close()

	webpBytes, err := storage.ConvertAvatarToWebP(src)
	if err != nil {
		log.Println("[ERROR] Konversi avatar:", err)
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Gambar tidak bisa diproses")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()
	stored, err := pc.Storage.Upload(ctx, bytes.NewReader(webpBytes), "avatar.webp", "image/webp", "avatars/"+user.ID.String())
	if err != nil {
		log.Println("[ERROR] Upload avatar:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah avatar")
	}

	oldRef := user.AvatarRef
	if err := pc.DB.WithContext(c.Context()).Model(user).Updates(map[string]interface{}{
		"avatar_url": stored.URL,
		"avatar_ref": stored.Ref,
	}).Error; err != nil {
		_ = pc.Storage.Delete(context.Background(), stored.Ref)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan avatar")
	}

	// avatar lama dihapus best-effort
	if oldRef != nil && *oldRef != "" && *oldRef != stored.Ref {
		go func(ref string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := pc.Storage.Delete(ctx, ref); err != nil {
				log.Printf("[WARN] Gagal hapus avatar lama %s: %v", ref, err)
			}
		}(*oldRef)
	}

	return helper.JsonUpdated(c, "Avatar berhasil diperbarui", fiber.Map{
		"avatar_url": stored.URL,
	})
}
