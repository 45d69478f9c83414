package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func doGet(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestJsonResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return JsonOK(c, "", fiber.Map{"a": 1}) })
	app.Get("/created", func(c *fiber.Ctx) error { return JsonCreated(c, "dibuat", nil) })
	app.Get("/err", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusConflict, "sudah ada") })
	app.Get("/list", func(c *fiber.Ctx) error {
		return JsonList(c, "", []int{1, 2, 3}, BuildPaginationFromPage(23, 2, 10))
	})

	code, body := doGet(t, app, "/ok")
	assert.Equal(t, 200, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])

	code, body = doGet(t, app, "/created")
	assert.Equal(t, 201, code)
	assert.Equal(t, "dibuat", body["message"])

	code, body = doGet(t, app, "/err")
	assert.Equal(t, 409, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "CONFLICT", body["error_code"])

	code, body = doGet(t, app, "/list")
	assert.Equal(t, 200, code)
	p := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, p["total_pages"])
	assert.EqualValues(t, 3, p["count"])
	assert.Equal(t, true, p["has_next"])
	assert.Equal(t, true, p["has_prev"])
}

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"", 1, 20, 0},
		{"?page=3&per_page=10", 3, 10, 20},
		{"?page=-1&limit=5", 1, 5, 0},
		{"?per_page=1000", 1, 100, 0},
		{"?per_page=abc", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got Paging
			app.Get("/", func(c *fiber.Ctx) error {
				got = ResolvePaging(c, 20, 100)
				return nil
			})
			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPerPage, got.PerPage)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestBuildPaginationEmpty(t *testing.T) {
	p := BuildPaginationFromPage(0, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

type registerInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"iqro_role"`
	Jenis    string `json:"jenis" validate:"jenis"`
}

func TestValidateStruct(t *testing.T) {
	ok := registerInput{Name: "Ahmad", Email: "a@b.co", Password: "rahasia", Role: "siswa", Jenis: "hafalan"}
	assert.Nil(t, ValidateStruct(ok))

	bad := registerInput{Name: "  ", Email: "bukan-email", Password: "123", Role: "admin", Jenis: "tilawah"}
	errs := ValidateStruct(bad)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "jenis")
	assert.Equal(t, "role harus salah satu dari siswa, guru, ortu", errs["role"][0])
}

func TestFromFiberError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"fiber error", fiber.NewError(fiber.StatusForbidden, "tidak boleh"), 403},
		{"wrapped fiber error", errors.Wrap(fiber.NewError(fiber.StatusConflict, "x"), "grade"), 409},
		{"not found", errors.Wrap(gorm.ErrRecordNotFound, "find"), 404},
		{"unique", &pgconn.PgError{Code: "23505"}, 409},
		{"other", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return FromFiberError(c, tt.err) })
			code, body := doGet(t, app, "/")
			assert.Equal(t, tt.code, code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestGetUserIDFromToken(t *testing.T) {
	app := fiber.New()
	app.Get("/:mode", func(c *fiber.Ctx) error {
		switch c.Params("mode") {
		case "valid":
			c.Locals(LocUserID, "9b2f7a0e-3c2b-4a53-9d7e-0a5b0f7e1c11")
		case "invalid":
			c.Locals(LocUserID, "bukan-uuid")
		}
		id, err := GetUserIDFromToken(c)
		if err != nil {
			return FromFiberError(c, err)
		}
		return JsonOK(c, "", id.String())
	})

	code, body := doGet(t, app, "/valid")
	assert.Equal(t, 200, code)
	assert.Equal(t, "9b2f7a0e-3c2b-4a53-9d7e-0a5b0f7e1c11", body["data"])

	code, _ = doGet(t, app, "/invalid")
	assert.Equal(t, 400, code)

	code, _ = doGet(t, app, "/none")
	assert.Equal(t, 401, code)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int64
		want        int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 4, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}
