package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"iqro_backend/internals/features/users/auth/dto"
	authRepo "iqro_backend/internals/features/users/auth/repository"
	helper "iqro_backend/internals/helpers"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.ChangePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if errs := helper.ValidateStruct(&input); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tx := db.WithContext(c.Context())
	user, err := authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Password lama salah")
	}

	newHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}

	if err := authRepo.UpdateUserPassword(tx, userID, newHash); err != nil {
		log.Println("[ERROR] UpdateUserPassword:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui password")
	}

	// sesi lain harus login ulang
	if err := authRepo.DeleteRefreshTokensByUser(tx, userID); err != nil {
		log.Printf("[WARN] Gagal hapus refresh token user %s: %v", userID, err)
	}

	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}
