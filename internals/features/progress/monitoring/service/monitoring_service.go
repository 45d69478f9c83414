package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	labelService "iqro_backend/internals/features/hafalan/labels/service"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	setoranService "iqro_backend/internals/features/hafalan/setoran/service"
	attendanceService "iqro_backend/internals/features/lembaga/attendance/service"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	"iqro_backend/internals/features/progress/monitoring/dto"
	pointService "iqro_backend/internals/features/progress/points/service"
	userModel "iqro_backend/internals/features/users/user/model"
	userService "iqro_backend/internals/features/users/user/service"
	"iqro_backend/internals/helpers/dbtime"
)

const (
	cardRecentLimit   = 5
	detailRecentLimit = 10
)

// monitoredStudents: guru -> siswa di kelasnya; ortu -> anak tertaut, fallback siswa sekelas.
func monitoredStudents(db *gorm.DB, viewerID uuid.UUID, role, q string) ([]userModel.UserModel, error) {
	base := db.Model(&userModel.UserModel{}).Where("role = ? AND is_active = ?", constants.RoleSiswa, true)

	switch role {
	case constants.RoleGuru:
		org, err := organizeService.FindGuruOrganize(db, viewerID)
		if err != nil {
			return nil, err
		}
		base = base.Where("organize_id = ?", org.ID)
	case constants.RoleOrtu:
		childIDs, err := userService.ChildIDsOf(db, viewerID)
		if err != nil {
			return nil, err
		}
		if len(childIDs) > 0 {
			base = base.Where("id IN ?", childIDs)
			break
		}
		orgID, err := organizeService.ResolveViewerOrganize(db, viewerID, role)
		if errors.Is(err, organizeService.ErrNotJoined) {
			return []userModel.UserModel{}, nil
		}
		if err != nil {
			return nil, err
		}
		base = base.Where("organize_id = ?", orgID)
	default:
		return []userModel.UserModel{}, nil
	}

	if q = strings.TrimSpace(q); q != "" {
		base = base.Where("name ILIKE ?", "%"+q+"%")
	}

	students := make([]userModel.UserModel, 0)
	err := base.Order("name ASC").Find(&students).Error
	return students, pkgerrors.Wrap(err, "list monitored students")
}

func ListStudents(db *gorm.DB, viewerID uuid.UUID, role, q string, now time.Time) ([]dto.StudentCard, error) {
	students, err := monitoredStudents(db, viewerID, role, q)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []dto.StudentCard{}, nil
	}

	ids := make([]uuid.UUID, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	setoranBySiswa, err := setoranService.AllBySiswa(db, ids)
	if err != nil {
		return nil, err
	}
	points, err := pointService.PointsBySiswa(db, ids)
	if err != nil {
		return nil, err
	}
	labelCounts, err := labelService.CountBySiswa(db, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.StudentCard, 0, len(students))
	for _, s := range students {
		list := setoranBySiswa[s.ID]
		cards = append(cards, dto.StudentCard{
			ID:         s.ID,
			Name:       s.Name,
			Email:      s.Email,
			AvatarURL:  s.AvatarURL,
			TotalPoin:  points[s.ID].TotalPoin,
			LabelCount: labelCounts[s.ID],
			Summary:    SummarizeSetoran(list, now),
			Recent:     firstN(list, cardRecentLimit),
		})
	}
	return cards, nil
}

func StudentDetail(db *gorm.DB, viewerID uuid.UUID, role string, studentID uuid.UUID, now time.Time) (*dto.StudentDetail, error) {
	student, err := organizeService.AuthorizeStudentAccess(db, viewerID, role, studentID)
	if err != nil {
		return nil, err
	}

	all, err := setoranService.AllBySiswa(db, []uuid.UUID{studentID})
	if err != nil {
		return nil, err
	}
	list := all[studentID]

	labels, err := labelService.ListBySiswa(db, studentID)
	if err != nil {
		return nil, err
	}
	points, err := pointService.GetPoints(db, studentID)
	if err != nil {
		return nil, err
	}

	today := dbtime.DateOnly(now)
	from, to, err := attendanceService.ResolveRange("", "", today)
	if err != nil {
		return nil, err
	}
	attendance, err := attendanceService.History(db, studentID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDetail{
		ID:                student.ID,
		Name:              student.Name,
		Email:             student.Email,
		AvatarURL:         student.AvatarURL,
		Summary:           SummarizeSetoran(list, now),
		Points:            points,
		Labels:            labels,
		Recent:            firstN(list, detailRecentLimit),
		Attendance:        attendance,
		AttendanceSummary: attendanceService.SummarizeAttendance(attendance),
	}, nil
}

// firstN: list sudah urut terbaru; hasil tidak pernah nil supaya JSON-nya [].
func firstN(list []setoranModel.SetoranModel, n int) []setoranModel.SetoranModel {
	if len(list) > n {
		list = list[:n]
	}
	out := make([]setoranModel.SetoranModel, len(list))
	copy(out, list)
	return out
}
