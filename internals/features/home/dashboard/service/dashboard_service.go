package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	setoranDTO "iqro_backend/internals/features/hafalan/setoran/dto"
	setoranService "iqro_backend/internals/features/hafalan/setoran/service"
	"iqro_backend/internals/features/home/dashboard/dto"
	notifService "iqro_backend/internals/features/home/notifications/service"
	organizeModel "iqro_backend/internals/features/lembaga/organizes/model"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	monitoringService "iqro_backend/internals/features/progress/monitoring/service"
	pointService "iqro_backend/internals/features/progress/points/service"
	userModel "iqro_backend/internals/features/users/user/model"
	userService "iqro_backend/internals/features/users/user/service"
)

const (
	recentSetoran = 3
	recentPending = 3
)

// Greeting berdasarkan jam lokal.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Selamat Pagi"
	case hour < 15:
		return "Selamat Siang"
	case hour < 18:
		return "Selamat Sore"
	default:
		return "Selamat Malam"
	}
}

func Build(db *gorm.DB, userID uuid.UUID, role string, now time.Time) (*dto.HomeResponse, error) {
	var u userModel.UserModel
	if err := db.Select("id, name, role").First(&u, "id = ?", userID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load user")
	}

	unread, err := notifService.UnreadCount(db, userID)
	if err != nil {
		return nil, err
	}

	out := &dto.HomeResponse{
		Greeting:    Greeting(now.Hour()),
		Name:        u.Name,
		Role:        role,
		UnreadCount: unread,
	}

	switch role {
	case constants.RoleSiswa:
		out.Siswa, err = siswaHome(db, userID, now)
	case constants.RoleGuru:
		out.Guru, err = guruHome(db, userID)
	case constants.RoleOrtu:
		out.Ortu, err = ortuHome(db, userID, now)
	case constants.RoleAdmin:
		out.Admin, err = adminHome(db)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func siswaHome(db *gorm.DB, siswaID uuid.UUID, now time.Time) (*dto.SiswaHome, error) {
	all, err := setoranService.AllBySiswa(db, []uuid.UUID{siswaID})
	if err != nil {
		return nil, err
	}
	list := all[siswaID]
	points, err := pointService.GetPoints(db, siswaID)
	if err != nil {
		return nil, err
	}

	recent := list
	if len(recent) > recentSetoran {
		recent = recent[:recentSetoran]
	}
	return &dto.SiswaHome{
		Summary: monitoringService.SummarizeSetoran(list, now),
		Recent:  recent,
		Points:  points,
	}, nil
}

func guruHome(db *gorm.DB, guruID uuid.UUID) (*dto.GuruHome, error) {
	out := &dto.GuruHome{RecentPending: []setoranDTO.PendingSetoranItem{}}

	org, err := organizeService.FindGuruOrganize(db, guruID)
	if errors.Is(err, organizeService.ErrNoOrganize) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	out.Organize = org

	if out.PendingCount, err = setoranService.CountPending(db, org.ID); err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("organize_id = ? AND role = ?", org.ID, constants.RoleSiswa).
		Count(&out.StudentCount).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count siswa")
	}
	if out.RecentPending, err = setoranService.ListPending(db, org.ID, recentPending); err != nil {
		return nil, err
	}
	return out, nil
}

func ortuHome(db *gorm.DB, parentID uuid.UUID, now time.Time) (*dto.OrtuHome, error) {
	ids, err := userService.ChildIDsOf(db, parentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.OrtuHome{}, nil
	}

	var child userModel.UserModel
	if err := db.Select("id, name").First(&child, "id = ?", ids[0]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.OrtuHome{}, nil
		}
		return nil, pkgerrors.Wrap(err, "load child")
	}
	all, err := setoranService.AllBySiswa(db, []uuid.UUID{child.ID})
	if err != nil {
		return nil, err
	}
	return &dto.OrtuHome{Child: &dto.ChildSummary{
		ID:      child.ID,
		Name:    child.Name,
		Summary: monitoringService.SummarizeSetoran(all[child.ID], now),
	}}, nil
}

func adminHome(db *gorm.DB) (*dto.AdminHome, error) {
	var out dto.AdminHome
	if err := db.Model(&userModel.UserModel{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count users")
	}
	if err := db.Model(&organizeModel.OrganizeModel{}).Count(&out.TotalOrganizes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count organizes")
	}
	return &out, nil
}
