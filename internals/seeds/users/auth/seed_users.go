package user

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	authService "iqro_backend/internals/features/users/auth/service"
	"iqro_backend/internals/features/users/user/model"
)

type UserSeed struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var n int64
		if err := db.Model(&model.UserModel{}).Where("email = ?", data.Email).Count(&n).Error; err == nil && n > 0 {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}
		if !constants.IsValidRole(data.Role) {
			log.Printf("❌ Role '%s' untuk '%s' tidak valid, dilewati.", data.Role, data.Email)
			continue
		}

		hashedPassword, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		newUser := model.UserModel{
			ID:       data.ID,
			Name:     data.Name,
			Email:    data.Email,
			Password: hashedPassword,
			Role:     data.Role,
			Type:     constants.UserTypeNormal,
			IsActive: true,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", data.Email)
		}
	}
}
