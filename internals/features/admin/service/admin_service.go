package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/admin/dto"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	organizeModel "iqro_backend/internals/features/lembaga/organizes/model"
	leaderboardService "iqro_backend/internals/features/progress/leaderboard/service"
	userModel "iqro_backend/internals/features/users/user/model"
	helper "iqro_backend/internals/helpers"
)

var (
	ErrUserNotFound   = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrDeactivateSelf = fiber.NewError(fiber.StatusBadRequest, "Tidak bisa menonaktifkan akun sendiri")
	ErrInvalidRole    = fiber.NewError(fiber.StatusBadRequest, "Role tidak valid")
)

func Stats(db *gorm.DB) (dto.SystemStats, error) {
	out := dto.SystemStats{UsersByRole: map[string]int64{}}
	for _, r := range constants.AllRoles {
		out.UsersByRole[r] = 0
	}

	var byRole []struct {
		Role  string
		Total int64
	}
	if err := db.Model(&userModel.UserModel{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&byRole).Error; err != nil {
		return out, errors.Wrap(err, "count users by role")
	}
	for _, r := range byRole {
		out.UsersByRole[r.Role] = r.Total
		out.TotalUsers += r.Total
	}

	if err := db.Model(&organizeModel.OrganizeModel{}).Count(&out.TotalOrganizes).Error; err != nil {
		return out, errors.Wrap(err, "count organizes")
	}

	var st struct {
		Total   int64
		Pending int64
	}
	if err := db.Model(&setoranModel.SetoranModel{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS pending", constants.StatusPending).
		Scan(&st).Error; err != nil {
		return out, errors.Wrap(err, "count setoran")
	}
	out.TotalSetoran, out.PendingSetoran = st.Total, st.Pending
	return out, nil
}

func ListUsers(db *gorm.DB, f dto.UserFilter, p helper.Paging) ([]userModel.UserModel, int64, error) {
	if f.Role != "" && !constants.IsValidRole(f.Role) {
		return nil, 0, ErrInvalidRole
	}

	q := db.Model(&userModel.UserModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}
	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return users, total, nil
}

func SetActive(db *gorm.DB, adminID, userID uuid.UUID, active bool) (*userModel.UserModel, error) {
	if adminID == userID && !active {
		return nil, ErrDeactivateSelf
	}
	res := db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("is_active", active)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update is_active")
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		return nil, errors.Wrap(err, "reload user")
	}
	if u.Role == constants.RoleSiswa && u.HasOrganize() {
		leaderboardService.InvalidateOrganize(context.Background(), *u.OrganizeID)
	}
	return &u, nil
}

func ListOrganizes(db *gorm.DB, p helper.Paging) ([]dto.OrganizeItem, int64, error) {
	var total int64
	if err := db.Model(&organizeModel.OrganizeModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count organizes")
	}

	items := make([]dto.OrganizeItem, 0, p.Limit)
	err := db.Table("organizes o").
		Select(`o.id, o.name, o.code, o.is_active, o.guru_id, o.created_at,
			COALESCE(g.name, '') AS guru_name,
			(SELECT COUNT(*) FROM users s WHERE s.organize_id = o.id AND s.role = ?) AS student_count`, constants.RoleSiswa).
		Joins("LEFT JOIN users g ON g.id = o.guru_id").
		Order("o.created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&items).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list organizes")
	}
	return items, total, nil
}
