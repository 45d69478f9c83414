package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	"iqro_backend/internals/features/progress/leaderboard/service"
	helper "iqro_backend/internals/helpers"
)

type LeaderboardController struct {
	DB *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// GET /api/u/leaderboard?filter=all|hafalan|quiz&q=
func (lc *LeaderboardController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := lc.DB.WithContext(c.Context())

	orgID, err := organizeService.ResolveViewerOrganize(db, userID, helper.GetRoleFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := service.Build(c.Context(), lc.DB, orgID, userID, c.Query("filter", "all"), c.Query("q"))
	if err != nil {
		log.Printf("[ERROR] Leaderboard kelas %s: %v", orgID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat leaderboard")
	}
	return helper.JsonOK(c, "Leaderboard", resp)
}
