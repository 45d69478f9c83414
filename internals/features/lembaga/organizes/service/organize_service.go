package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math"
	"math/big"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/constants"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	"iqro_backend/internals/features/lembaga/organizes/dto"
	"iqro_backend/internals/features/lembaga/organizes/model"
	leaderboardService "iqro_backend/internals/features/progress/leaderboard/service"
	pointModel "iqro_backend/internals/features/progress/points/model"
	pointService "iqro_backend/internals/features/progress/points/service"
	userModel "iqro_backend/internals/features/users/user/model"
	userService "iqro_backend/internals/features/users/user/service"
	helper "iqro_backend/internals/helpers"
)

const (
	codeAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength     = 6
	maxCodeRetries = 10
)

var (
	ErrNoOrganize      = fiber.NewError(fiber.StatusNotFound, "Anda belum memiliki kelas")
	ErrAlreadyOwner    = fiber.NewError(fiber.StatusConflict, "Anda sudah memiliki kelas")
	ErrAlreadyJoined   = fiber.NewError(fiber.StatusConflict, "Anda sudah bergabung dengan kelas")
	ErrCodeNotFound    = fiber.NewError(fiber.StatusNotFound, "Kode kelas tidak ditemukan atau kelas tidak aktif")
	ErrNotJoined       = fiber.NewError(fiber.StatusBadRequest, "Anda belum bergabung dengan kelas")
	ErrGuruCannotLeave = fiber.NewError(fiber.StatusBadRequest, "Guru tidak bisa keluar dari kelas sendiri")
	ErrStudentNotFound = fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan di kelas ini")
	ErrStudentAccess   = fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke data siswa ini")
)

/* =========================
   Kode kelas
========================= */

// GenerateCode: 6 karakter base36 huruf besar.
func GenerateCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func uniqueCode(tx *gorm.DB) (string, error) {
	for i := 0; i < maxCodeRetries; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		var n int64
		if err := tx.Model(&model.OrganizeModel{}).Where("code = ?", code).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return code, nil
		}
		log.Printf("[WARN] Kode kelas %s bentrok, generate ulang", code)
	}
	return "", pkgerrors.New("gagal membuat kode kelas unik")
}

/* =========================
   CRUD kelas (guru)
========================= */

func CreateOrganize(db *gorm.DB, guruID uuid.UUID, req dto.CreateOrganizeRequest) (*model.OrganizeModel, error) {
	var created *model.OrganizeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&model.OrganizeModel{}).Where("guru_id = ?", guruID).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwner
		}

		code, err := uniqueCode(tx)
		if err != nil {
			return err
		}
		org := req.ToModel(guruID, code)
		if err := tx.Create(org).Error; err != nil {
			return pkgerrors.Wrap(err, "insert organize")
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", guruID).
			Update("organize_id", org.ID).Error; err != nil {
			return pkgerrors.Wrap(err, "set guru organize_id")
		}
		created = org
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Kelas %q dibuat oleh guru %s (kode %s)", created.Name, guruID, created.Code)
	return created, nil
}

// FindGuruOrganize: kelas milik guru (satu guru satu kelas).
func FindGuruOrganize(db *gorm.DB, guruID uuid.UUID) (*model.OrganizeModel, error) {
	var org model.OrganizeModel
	err := db.Where("guru_id = ?", guruID).Order("created_at ASC").First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOrganize
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func UpdateOrganize(db *gorm.DB, guruID uuid.UUID, req dto.UpdateOrganizeRequest) (*model.OrganizeModel, error) {
	org, err := FindGuruOrganize(db, guruID)
	if err != nil {
		return nil, err
	}
	updates := req.ToUpdateMap()
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if err := db.Model(org).Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update organize")
	}
	return FindGuruOrganize(db, guruID)
}

func RegenerateCode(db *gorm.DB, guruID uuid.UUID) (*model.OrganizeModel, error) {
	org, err := FindGuruOrganize(db, guruID)
	if err != nil {
		return nil, err
	}
	code, err := uniqueCode(db)
	if err != nil {
		return nil, err
	}
	if err := db.Model(org).Update("code", code).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Kode bentrok, silakan coba lagi")
		}
		return nil, pkgerrors.Wrap(err, "update code")
	}
	org.Code = code
	return org, nil
}

/* =========================
   Statistik
========================= */

type StudentSetoranCount struct {
	SiswaID  uuid.UUID
	Total    int64
	Diterima int64
}

// AverageAccuracy: rata-rata (dibulatkan) akurasi per siswa yang punya minimal satu setoran.
func AverageAccuracy(counts []StudentSetoranCount) int {
	var sum float64
	var n int
	for _, c := range counts {
		if c.Total <= 0 {
			continue
		}
		sum += float64(c.Diterima) / float64(c.Total) * 100
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

func ComputeStats(db *gorm.DB, orgID uuid.UUID) (dto.OrganizeStats, error) {
	var st dto.OrganizeStats

	students := db.Model(&userModel.UserModel{}).
		Where("organize_id = ? AND role = ?", orgID, constants.RoleSiswa)
	if err := students.Count(&st.TotalStudents).Error; err != nil {
		return st, pkgerrors.Wrap(err, "count students")
	}

	var counts []StudentSetoranCount
	if err := db.Model(&setoranModel.SetoranModel{}).
		Select("siswa_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS diterima", constants.StatusDiterima).
		Where("organize_id = ?", orgID).
		Group("siswa_id").
		Scan(&counts).Error; err != nil {
		return st, pkgerrors.Wrap(err, "count setoran per siswa")
	}
	for _, c := range counts {
		st.TotalSetoran += c.Total
	}
	st.AverageAccuracy = AverageAccuracy(counts)

	if err := db.Model(&setoranModel.SetoranModel{}).
		Where("organize_id = ? AND status = ?", orgID, constants.StatusPending).
		Count(&st.PendingSetoran).Error; err != nil {
		return st, pkgerrors.Wrap(err, "count pending")
	}

	if err := db.Model(&pointModel.SiswaPoinModel{}).
		Select("COALESCE(SUM(total_poin), 0)").
		Where("siswa_id IN (?)", db.Model(&userModel.UserModel{}).Select("id").
			Where("organize_id = ? AND role = ?", orgID, constants.RoleSiswa)).
		Scan(&st.TotalPoints).Error; err != nil {
		return st, pkgerrors.Wrap(err, "sum points")
	}
	return st, nil
}

/* =========================
   Siswa di kelas
========================= */

func ListStudents(db *gorm.DB, orgID uuid.UUID, q string, p helper.Paging) ([]dto.StudentItem, int64, error) {
	base := db.Table("users u").
		Where("u.organize_id = ? AND u.role = ?", orgID, constants.RoleSiswa)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		base = base.Where("u.name ILIKE ? OR u.email ILIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count students")
	}

	out := make([]dto.StudentItem, 0)
	err := base.
		Select("u.id, u.name, u.email, u.type, u.avatar_url, u.created_at, COALESCE(sp.total_poin, 0) AS total_poin").
		Joins("LEFT JOIN siswa_poin sp ON sp.siswa_id = u.id").
		Order("u.created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&out).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list students")
	}
	return out, total, nil
}

func RemoveStudent(db *gorm.DB, orgID, studentID uuid.UUID) error {
	res := db.Model(&userModel.UserModel{}).
		Where("id = ? AND organize_id = ? AND role = ?", studentID, orgID, constants.RoleSiswa).
		Update("organize_id", nil)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "remove student")
	}
	if res.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	leaderboardService.InvalidateOrganize(context.Background(), orgID)
	return nil
}

/* =========================
   Gabung / keluar (siswa, ortu)
========================= */

func Join(db *gorm.DB, userID uuid.UUID, rawCode string) (*model.OrganizeModel, error) {
	code := NormalizeCode(rawCode)
	var joined model.OrganizeModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		if user.HasOrganize() {
			return ErrAlreadyJoined
		}

		if err := tx.Where("code = ? AND is_active = ?", code, true).First(&joined).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCodeNotFound
			}
			return err
		}

		if err := tx.Model(&user).Update("organize_id", joined.ID).Error; err != nil {
			return pkgerrors.Wrap(err, "set organize_id")
		}
		if user.Role == constants.RoleSiswa {
			return pointService.EnsurePoints(tx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	leaderboardService.InvalidateOrganize(context.Background(), joined.ID)
	log.Printf("[INFO] User %s bergabung ke kelas %s", userID, joined.Code)
	return &joined, nil
}

func Leave(db *gorm.DB, userID uuid.UUID) error {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if !user.HasOrganize() {
		return ErrNotJoined
	}
	if user.Role == constants.RoleGuru {
		return ErrGuruCannotLeave
	}
	orgID := *user.OrganizeID
	if err := db.Model(&user).Update("organize_id", nil).Error; err != nil {
		return pkgerrors.Wrap(err, "clear organize_id")
	}
	leaderboardService.InvalidateOrganize(context.Background(), orgID)
	return nil
}

// ResolveViewerOrganize menentukan kelas yang dilihat user:
// guru -> kelas miliknya, ortu -> kelas anak pertama yang tertaut (fallback kelas sendiri),
// lainnya -> organize_id sendiri. Mengembalikan ErrNotJoined kalau tidak ada.
func ResolveViewerOrganize(db *gorm.DB, userID uuid.UUID, role string) (uuid.UUID, error) {
	if role == constants.RoleGuru {
		org, err := FindGuruOrganize(db, userID)
		if err != nil {
			return uuid.Nil, err
		}
		return org.ID, nil
	}

	if role == constants.RoleOrtu {
		childIDs, err := userService.ChildIDsOf(db, userID)
		if err != nil {
			return uuid.Nil, err
		}
		if len(childIDs) > 0 {
			var children []userModel.UserModel
			if err := db.Select("id, organize_id").
				Where("id IN ? AND organize_id IS NOT NULL", childIDs).
				Find(&children).Error; err != nil {
				return uuid.Nil, pkgerrors.Wrap(err, "organize anak")
			}
			byID := make(map[uuid.UUID]*uuid.UUID, len(children))
			for _, ch := range children {
				byID[ch.ID] = ch.OrganizeID
			}
			// urutan tautan menentukan "anak pertama"
			for _, id := range childIDs {
				if org := byID[id]; org != nil && *org != uuid.Nil {
					return *org, nil
				}
			}
		}
	}

	var user userModel.UserModel
	if err := db.Select("id, organize_id").First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, err
	}
	if !user.HasOrganize() {
		return uuid.Nil, ErrNotJoined
	}
	return *user.OrganizeID, nil
}

// AuthorizeStudentAccess: siswa hanya dirinya, guru siswa di kelasnya, ortu anak yang tertaut
// (atau siswa sekelas kalau belum menautkan anak), admin semua.
func AuthorizeStudentAccess(db *gorm.DB, viewerID uuid.UUID, role string, studentID uuid.UUID) (*userModel.UserModel, error) {
	var student userModel.UserModel
	err := db.Where("id = ? AND role = ?", studentID, constants.RoleSiswa).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	switch role {
	case constants.RoleAdmin:
		return &student, nil
	case constants.RoleSiswa:
		if viewerID == studentID {
			return &student, nil
		}
	case constants.RoleGuru:
		org, err := FindGuruOrganize(db, viewerID)
		if err != nil {
			if errors.Is(err, ErrNoOrganize) {
				return nil, ErrStudentAccess
			}
			return nil, err
		}
		if student.HasOrganize() && *student.OrganizeID == org.ID {
			return &student, nil
		}
	case constants.RoleOrtu:
		childIDs, err := userService.ChildIDsOf(db, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range childIDs {
			if id == studentID {
				return &student, nil
			}
		}
		if len(childIDs) == 0 && student.HasOrganize() {
			var parent userModel.UserModel
			if err := db.Select("id, organize_id").First(&parent, "id = ?", viewerID).Error; err != nil {
				return nil, err
			}
			if parent.HasOrganize() && *parent.OrganizeID == *student.OrganizeID {
				return &student, nil
			}
		}
	}
	return nil, ErrStudentAccess
}
