// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "iqro_backend/internals/features/users/auth/model"
	userModel "iqro_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newHash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newHash).Error
}

func LinkGoogleID(db *gorm.DB, userID uuid.UUID, googleID string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("google_id", googleID).Error
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshToken) error {
	return db.Create(token).Error
}

// FindActiveRefreshToken: hash harus ada dan belum expired.
func FindActiveRefreshToken(db *gorm.DB, hash []byte) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.Where("token_hash = ? AND expires_at > ?", hash, time.Now().UTC()).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token_hash = ?", hash).Delete(&authModel.RefreshToken{}).Error
}

func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}

func CleanupExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	res := db.Where("expires_at <= ?", time.Now().UTC()).Delete(&authModel.RefreshToken{})
	return res.RowsAffected, res.Error
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Where(authModel.TokenBlacklist{Token: token}).
		Attrs(authModel.TokenBlacklist{ExpiredAt: expiredAt}).
		FirstOrCreate(&authModel.TokenBlacklist{}).Error
}

// CleanupExpiredBlacklist menghapus token yang sudah lewat expired_at + retensi.
func CleanupExpiredBlacklist(db *gorm.DB, retention time.Duration) (int64, error) {
	deleteBefore := time.Now().UTC().Add(-retention)
	res := db.Where("expired_at < ?", deleteBefore).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
