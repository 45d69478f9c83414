package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/constants"
	helper "iqro_backend/internals/helpers"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	old := configs.JWTSecret
	configs.JWTSecret = testSecret
	t.Cleanup(func() { configs.JWTSecret = old })

	app := fiber.New()
	app.Get("/me", AuthMiddleware(nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":   c.Locals(helper.LocUserID),
			"role": c.Locals(helper.LocUserRole),
			"name": c.Locals(helper.LocUserName),
			"raw":  helper.GetRawAccessToken(c) != "",
		})
	})
	app.Get("/guru", AuthMiddleware(nil), OnlyRoles("khusus guru", constants.GuruOnly...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(t)
	id := uuid.New().String()
	valid := signToken(t, jwt.MapClaims{"id": id, "role": "siswa", "name": "Aisyah", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, jwt.MapClaims{"id": id, "role": "siswa", "exp": time.Now().Add(-time.Hour).Unix()})
	noID := signToken(t, jwt.MapClaims{"role": "siswa", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bad scheme", "Basic abc", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", "", fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, "", fiber.StatusUnauthorized},
		{"missing id", "Bearer " + noID, "", fiber.StatusUnauthorized},
		{"valid header", "Bearer " + valid, "", fiber.StatusOK},
		{"valid cookie", "", valid, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set(fiber.HeaderCookie, "access_token="+tt.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	app := newTestApp(t)
	exp := time.Now().Add(time.Hour).Unix()

	for role, want := range map[string]int{
		"guru":  fiber.StatusNoContent,
		"siswa": fiber.StatusForbidden,
		"":      fiber.StatusUnauthorized,
	} {
		claims := jwt.MapClaims{"id": uuid.New().String(), "exp": exp}
		if role != "" {
			claims["role"] = role
		}
		req := httptest.NewRequest(fiber.MethodGet, "/guru", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, claims))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, "role=%q", role)
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	now := time.Now()
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(now.Add(time.Minute).Unix())}, 0))
	// masih dalam toleransi
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(now.Add(-10 * time.Second).Unix())}, 30*time.Second))
	assert.ErrorIs(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(now.Add(-time.Hour).Unix())}, 30*time.Second), errTokenExpired)
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": true}, 0))
}

func TestParseAccessTokenRejectsOtherAlg(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": uuid.New().String(), "exp": time.Now().Add(time.Hour).Unix()})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(s, testSecret)
	assert.Error(t, err)
}
