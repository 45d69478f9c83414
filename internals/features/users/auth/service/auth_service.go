package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/constants"
	organizeModel "iqro_backend/internals/features/lembaga/organizes/model"
	pointService "iqro_backend/internals/features/progress/points/service"
	"iqro_backend/internals/features/users/auth/dto"
	authModel "iqro_backend/internals/features/users/auth/model"
	authRepo "iqro_backend/internals/features/users/auth/repository"
	userModel "iqro_backend/internals/features/users/user/model"
	helper "iqro_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Normalize()
	if errs := helper.ValidateStruct(&input); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	user := input.ToModel(passwordHash)

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := authRepo.CreateUser(tx, user); err != nil {
			return err
		}
		// siswa langsung punya baris siswa_poin (0,0,0)
		if user.Role == constants.RoleSiswa {
			return pointService.EnsurePoints(tx, user.ID)
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Println("[ERROR] Register gagal:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	log.Printf("[INFO] User baru terdaftar: %s (%s)", user.Email, user.Role)
	return helper.JsonCreated(c, "Registrasi berhasil", fiber.Map{
		"user": user,
		"tabs": constants.TabsForRole(user.Role),
	})
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if errs := helper.ValidateStruct(&input); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	user, err := authRepo.FindUserByEmail(db.WithContext(c.Context()), input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Println("[ERROR] Login FindUserByEmail:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if err := CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	return issueTokens(c, db, *user, "Login berhasil")
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	if strings.TrimSpace(configs.GoogleClientID) == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login Google belum dikonfigurasi")
	}

	var input dto.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(&input); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	name, googleID := strings.TrimSpace(claimSet.Name), claimSet.Sub
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	tx := db.WithContext(c.Context())
	user, err := findOrCreateGoogleUser(tx, email, name, googleID)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Println("[ERROR] LoginGoogle:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login dengan Google")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	return issueTokens(c, db, *user, "Login berhasil")
}

// Cari by google_id, lalu by email (tautkan google_id), terakhir buat akun siswa baru.
func findOrCreateGoogleUser(db *gorm.DB, email, name, googleID string) (*userModel.UserModel, error) {
	if user, err := authRepo.FindUserByGoogleID(db, googleID); err == nil {
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user, err := authRepo.FindUserByEmail(db, email); err == nil {
		if err := authRepo.LinkGoogleID(db, user.ID, googleID); err != nil {
			return nil, err
		}
		user.GoogleID = &googleID
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dummy, err := HashPassword(randomString(24))
	if err != nil {
		return nil, err
	}
	newUser := &userModel.UserModel{
		Name:     name,
		Email:    email,
		Password: dummy,
		GoogleID: &googleID,
		Role:     constants.RoleSiswa,
		Type:     constants.UserTypeNormal,
		IsActive: true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := authRepo.CreateUser(tx, newUser); err != nil {
			return err
		}
		return pointService.EnsurePoints(tx, newUser.ID)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] User Google baru: %s", email)
	return newUser, nil
}

/* ==========================
   REFRESH TOKEN (rotate)
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.RefreshRequest
	_ = c.BodyParser(&input)
	raw := helper.GetRefreshToken(c, input.RefreshToken)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := ParseRefreshToken(raw, refreshSecret)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tx := db.WithContext(c.Context())
	hash := ComputeRefreshHash(raw, refreshSecret)
	if _, err := authRepo.FindActiveRefreshToken(tx, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	user, err := authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: hapus hash lama
	if err := authRepo.DeleteRefreshTokenByHash(tx, hash); err != nil {
		log.Printf("[WARN] refresh: gagal hapus hash lama: %v", err)
	}
	return issueTokens(c, db, *user, "Token diperbarui")
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tx := db.WithContext(c.Context())

	accessToken := helper.GetRawAccessToken(c)
	if accessToken != "" {
		if err := authRepo.BlacklistToken(tx, accessToken, ResolveBlacklistExpiry(accessToken, nowUTC())); err != nil {
			log.Printf("[WARN] Gagal blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies")
	}

	var input dto.RefreshRequest
	_ = c.BodyParser(&input)
	if rt := helper.GetRefreshToken(c, input.RefreshToken); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(tx, ComputeRefreshHash(rt, secret))
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tx := db.WithContext(c.Context())
	user, err := authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.MeResponse{
		User: user,
		Tabs: constants.TabsForRole(user.Role),
	}
	if user.HasOrganize() {
		var org organizeModel.OrganizeModel
		err := tx.Select("id", "name", "description", "code").
			Where("id = ?", *user.OrganizeID).
			Limit(1).Find(&org).Error
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if org.ID != uuid.Nil {
			resp.Organize = &dto.OrganizeSummary{
				ID:          org.ID.String(),
				Name:        org.Name,
				Description: org.Description,
				Code:        org.Code,
			}
		}
	}
	return helper.JsonOK(c, "Profil berhasil diambil", resp)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel, message string) error {
	now := nowUTC()
	pair, err := issueTokenPair(user, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ua := c.Get(fiber.HeaderUserAgent)
	rt := &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: pair.RefreshHash,
		ExpiresAt: pair.RefreshUntil,
	}
	if ua != "" {
		rt.UserAgent = &ua
	}
	if err := authRepo.CreateRefreshToken(db.WithContext(c.Context()), rt); err != nil {
		log.Println("[ERROR] Gagal simpan refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan refresh token")
	}

	setAuthCookies(c, pair.Access, pair.Refresh, now)

	return helper.JsonOK(c, message, dto.LoginResponse{
		User:         &user,
		Tabs:         constants.TabsForRole(user.Role),
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		ExpiresIn:    int64(accessTTLDefault.Seconds()),
	})
}

func randomString(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
