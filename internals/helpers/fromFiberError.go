package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/helpers/reporting"
)

// FromFiberError mengubah error dari service (biasanya *fiber.Error, kadang terbungkus
// errors.Wrap) menjadi response JSON konsisten. Error lain dianggap 500 dan dilaporkan.
func FromFiberError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}
	if IsUniqueViolation(err) {
		return JsonError(c, fiber.StatusConflict, "Data sudah ada")
	}

	reporting.Error("unhandled service error", err, map[string]interface{}{
		"method": c.Method(),
		"path":   c.Path(),
		"req_id": c.Locals("reqid"),
	})
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// IsUniqueViolation: pelanggaran unique constraint Postgres (23505).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "sqlstate 23505")
}

// ErrorHandler untuk fiber.Config: *fiber.Error -> JSON standar, sisanya 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= 500 {
			reporting.Error("fiber error", err, map[string]interface{}{"path": c.Path()})
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	return FromFiberError(c, err)
}
