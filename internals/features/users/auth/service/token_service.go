// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"iqro_backend/internals/configs"
	userModel "iqro_backend/internals/features/users/user/model"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour

	typAccess  = "access"
	typRefresh = "refresh"
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(configs.GetEnv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(configs.GetEnv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

// ComputeRefreshHash: HMAC-SHA256(token, secret). Yang disimpan di DB hanya hash ini.
func ComputeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Claims builder
========================== */

func BuildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":   typAccess,
		"sub":   user.ID.String(),
		"id":    user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTTLDefault).Unix(),
	}
	if user.HasOrganize() {
		claims["organize_id"] = user.OrganizeID.String()
	}
	return claims
}

func BuildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": typRefresh,
		"sub": userID.String(),
		"id":  userID.String(),
		// jti supaya dua refresh token di detik yang sama tetap beda hash
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func SignClaims(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseRefreshToken memverifikasi signature + exp + typ lalu mengembalikan user id (sub).
func ParseRefreshToken(token, secret string) (uuid.UUID, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	if typ, _ := claims["typ"].(string); typ != typRefresh {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Bukan refresh token")
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	return id, nil
}

// ResolveBlacklistExpiry: token disimpan di blacklist sampai exp-nya lewat (+1 menit).
// Kalau exp tidak terbaca, pakai now + accessTTL.
func ResolveBlacklistExpiry(accessToken string, now time.Time) time.Time {
	fallback := now.Add(accessTTLDefault)
	if accessToken == "" {
		return fallback
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return fallback
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fallback
	}
	expAt := time.Unix(int64(exp), 0).UTC()
	if expAt.Before(now) {
		return now.Add(time.Minute)
	}
	return expAt.Add(time.Minute)
}

/* ==========================
   Token pair
========================== */

type tokenPair struct {
	Access       string
	Refresh      string
	RefreshHash  []byte
	RefreshUntil time.Time
}

func issueTokenPair(user userModel.UserModel, now time.Time) (*tokenPair, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	access, err := SignClaims(BuildAccessClaims(user, now), jwtSecret)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refresh, err := SignClaims(BuildRefreshClaims(user.ID, now), refreshSecret)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}
	return &tokenPair{
		Access:       access,
		Refresh:      refresh,
		RefreshHash:  ComputeRefreshHash(refresh, refreshSecret),
		RefreshUntil: now.Add(refreshTTLDefault),
	}, nil
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}
