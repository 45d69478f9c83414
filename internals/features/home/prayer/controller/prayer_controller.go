package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"iqro_backend/internals/features/home/prayer/service"
	helper "iqro_backend/internals/helpers"
)

type PrayerController struct {
	Service *service.Service
}

func NewPrayerController(svc *service.Service) *PrayerController {
	return &PrayerController{Service: svc}
}

// GET /api/public/prayer-times?latitude=&longitude=&city=
func (pc *PrayerController) GetTimes(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Query("latitude")), 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "latitude wajib berupa angka")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.Query("longitude")), 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "longitude wajib berupa angka")
	}

	res, err := pc.Service.Lookup(c.Context(), lat, lng, strings.TrimSpace(c.Query("city")))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Jadwal sholat", res)
}
