package route

import (
	"github.com/gofiber/fiber/v2"

	"iqro_backend/internals/features/home/prayer/controller"
	"iqro_backend/internals/features/home/prayer/service"
)

func PrayerPublicRoutes(public fiber.Router) {
	ctrl := controller.NewPrayerController(service.NewService(service.NewClientFromEnv()))
	public.Get("/prayer-times", ctrl.GetTimes)
}
