// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"iqro_backend/internals/configs"
	authModel "iqro_backend/internals/features/users/auth/model"
	helper "iqro_backend/internals/helpers"
)

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Cek blacklist
		if blacklisted, err := isBlacklisted(db, tokenString); err != nil {
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		} else if blacklisted {
			log.Println("[WARNING] Token ditemukan di blacklist")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		// 3) Parse & verifikasi JWT
		claims, err := ParseAccessToken(tokenString, configs.JWTSecret)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			if errors.Is(err, errTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Ambil user_id & validasi user aktif
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			if errors.Is(err, errUserInactive) {
				return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			}
			log.Println("[ERROR] ensureUserActive:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		// 5) Simpan info klaim ke context
		c.Locals(helper.LocUserID, userID.String())
		storeBasicClaimsToLocals(c, claims)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}

// ParseAccessToken memverifikasi signature lalu exp (toleransi 30 detik).
func ParseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET kosong")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return nil, err
	}
	return claims, nil
}

func isBlacklisted(db *gorm.DB, token string) (bool, error) {
	if db == nil {
		return false, nil
	}
	var n int64
	err := db.Model(&authModel.TokenBlacklist{}).
		Where("token = ?", token).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
