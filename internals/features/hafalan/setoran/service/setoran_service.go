package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/constants"
	labelService "iqro_backend/internals/features/hafalan/labels/service"
	"iqro_backend/internals/features/hafalan/setoran/dto"
	"iqro_backend/internals/features/hafalan/setoran/model"
	notifService "iqro_backend/internals/features/home/notifications/service"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	pointService "iqro_backend/internals/features/progress/points/service"
	userModel "iqro_backend/internals/features/users/user/model"
	userService "iqro_backend/internals/features/users/user/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
	"iqro_backend/internals/helpers/storage"
)

var (
	ErrSiswaNoOrganize   = fiber.NewError(fiber.StatusBadRequest, "Anda belum bergabung dengan kelas")
	ErrSetoranNotFound   = fiber.NewError(fiber.StatusNotFound, "Setoran tidak ditemukan")
	ErrAlreadyGraded     = fiber.NewError(fiber.StatusConflict, "Setoran sudah dinilai")
	ErrNotYourOrganize   = fiber.NewError(fiber.StatusForbidden, "Setoran bukan dari kelas Anda")
	ErrOnlyPendingDelete = fiber.NewError(fiber.StatusConflict, "Hanya setoran pending yang bisa dihapus")
	ErrSetoranForbidden  = fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke setoran ini")
	ErrFileRequired      = fiber.NewError(fiber.StatusBadRequest, "File rekaman atau file_url wajib diisi")
	ErrAyatRange         = fiber.NewError(fiber.StatusBadRequest, "ayat_selesai tidak boleh lebih kecil dari ayat_mulai")
)

// ResolveGradePoints: ditolak selalu 0; diterima memakai input kalau > 0, selain itu 10.
func ResolveGradePoints(status string, input *int) int {
	if status != constants.StatusDiterima {
		return 0
	}
	if input != nil && *input > 0 {
		return *input
	}
	return constants.DefaultGradePoints
}

/* =========================
   Kirim setoran (siswa)
========================= */

// RequireOrganize dicek sebelum upload supaya tidak ada file yatim.
func RequireOrganize(db *gorm.DB, siswaID uuid.UUID) (uuid.UUID, error) {
	var u userModel.UserModel
	if err := db.Select("id, organize_id").First(&u, "id = ?", siswaID).Error; err != nil {
		return uuid.Nil, err
	}
	if !u.HasOrganize() {
		return uuid.Nil, ErrSiswaNoOrganize
	}
	return *u.OrganizeID, nil
}

func Create(db *gorm.DB, siswaID, orgID uuid.UUID, req dto.SubmitSetoranRequest, stored *storage.Stored, driver string) (*model.SetoranModel, error) {
	s := &model.SetoranModel{
		SiswaID:     siswaID,
		OrganizeID:  &orgID,
		FileURL:     req.FileURL,
		Jenis:       req.Jenis,
		Tanggal:     dbtime.Today(),
		Status:      constants.StatusPending,
		Catatan:     req.Catatan,
		Surah:       &req.Surah,
		Juz:         &req.Juz,
		AyatMulai:   req.AyatMulai,
		AyatSelesai: req.AyatSelesai,
		Poin:        0,
	}
	if stored != nil {
		s.FileURL = stored.URL
		ref := stored.Ref
		s.FileRef = &ref
		meta, err := sonic.Marshal(map[string]any{
			"driver":       driver,
			"content_type": stored.ContentType,
			"size":         stored.Size,
		})
		if err == nil {
			s.Metadata = datatypes.JSON(meta)
		}
	}
	if s.FileURL == "" {
		return nil, ErrFileRequired
	}
	if err := db.Create(s).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "insert setoran")
	}
	log.Printf("[INFO] Setoran %s (%s) dikirim siswa %s", s.ID, s.Jenis, siswaID)
	return s, nil
}

/* =========================
   Daftar setoran
========================= */

type ListFilter struct {
	Status string
	Jenis  string
}

func applyFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if constants.IsValidSetoranStatus(f.Status) {
		q = q.Where("status = ?", f.Status)
	}
	if constants.IsValidJenis(f.Jenis) {
		q = q.Where("jenis = ?", f.Jenis)
	}
	return q
}

func ListMine(db *gorm.DB, siswaID uuid.UUID, f ListFilter, p helper.Paging) ([]model.SetoranModel, int64, error) {
	base := applyFilter(db.Model(&model.SetoranModel{}).Where("siswa_id = ?", siswaID), f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count setoran")
	}
	items := make([]model.SetoranModel, 0)
	if err := base.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list setoran")
	}
	return items, total, nil
}

// SummaryOf: ringkasan seluruh setoran siswa (tidak terpengaruh filter/pagination).
func SummaryOf(db *gorm.DB, siswaID uuid.UUID) (dto.SetoranSummary, error) {
	var rows []struct {
		Status string
		N      int64
		Poin   int64
	}
	err := db.Model(&model.SetoranModel{}).
		Select("status, COUNT(*) AS n, COALESCE(SUM(poin), 0) AS poin").
		Where("siswa_id = ?", siswaID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return dto.SetoranSummary{}, pkgerrors.Wrap(err, "summary setoran")
	}

	var sum dto.SetoranSummary
	for _, r := range rows {
		sum.Total += r.N
		sum.TotalPoin += r.Poin
		switch r.Status {
		case constants.StatusPending:
			sum.Pending = r.N
		case constants.StatusDiterima:
			sum.Diterima = r.N
		case constants.StatusDitolak:
			sum.Ditolak = r.N
		}
	}
	return sum, nil
}

// ListPending: setoran pending di kelas guru, yang paling lama di depan.
func ListPending(db *gorm.DB, orgID uuid.UUID, limit int) ([]dto.PendingSetoranItem, error) {
	out := make([]dto.PendingSetoranItem, 0)
	q := db.Table("setoran s").
		Select(`s.id, s.siswa_id, u.name AS siswa_name, s.file_url, s.jenis, s.tanggal, s.surah, s.juz,
			s.ayat_mulai, s.ayat_selesai, s.catatan, s.created_at`).
		Joins("JOIN users u ON u.id = s.siswa_id").
		Where("s.organize_id = ? AND s.status = ? AND s.deleted_at IS NULL", orgID, constants.StatusPending).
		Order("s.created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&out).Error
	return out, pkgerrors.Wrap(err, "list pending setoran")
}

func CountPending(db *gorm.DB, orgID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&model.SetoranModel{}).
		Where("organize_id = ? AND status = ?", orgID, constants.StatusPending).
		Count(&n).Error
	return n, err
}

// RecentBySiswa: n setoran terbaru per siswa (urut terbaru).
func RecentBySiswa(db *gorm.DB, siswaID uuid.UUID, n int) ([]model.SetoranModel, error) {
	list := make([]model.SetoranModel, 0)
	err := db.Where("siswa_id = ?", siswaID).Order("created_at DESC").Limit(n).Find(&list).Error
	return list, pkgerrors.Wrap(err, "recent setoran")
}

// AllBySiswa dipakai ringkasan monitoring.
func AllBySiswa(db *gorm.DB, siswaIDs []uuid.UUID) (map[uuid.UUID][]model.SetoranModel, error) {
	out := make(map[uuid.UUID][]model.SetoranModel, len(siswaIDs))
	if len(siswaIDs) == 0 {
		return out, nil
	}
	var list []model.SetoranModel
	if err := db.Where("siswa_id IN ?", siswaIDs).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list setoran siswa")
	}
	for _, s := range list {
		out[s.SiswaID] = append(out[s.SiswaID], s)
	}
	return out, nil
}

/* =========================
   Detail
========================= */

func findByID(db *gorm.DB, id uuid.UUID) (*model.SetoranModel, error) {
	var s model.SetoranModel
	err := db.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSetoranNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetForViewer: pemilik, ortu pemilik, atau guru kelasnya (admin boleh semua).
func GetForViewer(db *gorm.DB, id, viewerID uuid.UUID, role string) (*model.SetoranModel, error) {
	s, err := findByID(db, id)
	if err != nil {
		return nil, err
	}
	if role == constants.RoleSiswa && s.SiswaID != viewerID {
		return nil, ErrSetoranForbidden
	}
	if _, err := organizeService.AuthorizeStudentAccess(db, viewerID, role, s.SiswaID); err != nil {
		if errors.Is(err, organizeService.ErrStudentAccess) {
			return nil, ErrSetoranForbidden
		}
		return nil, err
	}
	return s, nil
}

/* =========================
   Penilaian (guru)
========================= */

// Grade menjalankan penilaian dalam satu transaksi:
// lock baris -> hitung poin -> update setoran -> tambah poin -> label juz -> notifikasi siswa & ortu.
func Grade(db *gorm.DB, guruID, id uuid.UUID, req dto.GradeSetoranRequest) (*dto.GradeResult, error) {
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return nil, err
	}

	var result dto.GradeResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var s model.SetoranModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSetoranNotFound
			}
			return err
		}
		if s.OrganizeID == nil || *s.OrganizeID != org.ID {
			return ErrNotYourOrganize
		}
		if s.Status != constants.StatusPending {
			return ErrAlreadyGraded
		}

		poin := ResolveGradePoints(req.Status, req.Poin)
		now := dbtime.Now()
		updates := map[string]interface{}{
			"status":    req.Status,
			"poin":      poin,
			"guru_id":   guruID,
			"graded_at": now,
		}
		if req.Catatan != nil {
			updates["catatan"] = *req.Catatan
		}
		if err := tx.Model(&s).Updates(updates).Error; err != nil {
			return pkgerrors.Wrap(err, "update setoran")
		}
		s.Status, s.Poin, s.GuruID, s.GradedAt = req.Status, poin, &guruID, &now
		if req.Catatan != nil {
			s.Catatan = req.Catatan
		}

		accepted := req.Status == constants.StatusDiterima
		if accepted && poin > 0 {
			if err := pointService.AddPoints(tx, s.SiswaID, constants.PointKindHafalan, poin, constants.PointSourceSetoran, &s.ID); err != nil {
				return err
			}
			result.PointsAdded = poin
		}

		if accepted && s.Juz != nil {
			created, err := labelService.EnsureJuzLabel(tx, s.SiswaID, *s.Juz, &guruID, labelService.JuzDoneText(*s.Juz))
			if err != nil {
				return err
			}
			result.LabelCreated = created
		}

		title, message, typ := gradeNotification(s)
		if _, err := notifService.Create(tx, s.SiswaID, title, message, typ, map[string]any{
			"setoran_id": s.ID,
			"status":     s.Status,
			"poin":       s.Poin,
		}); err != nil {
			return err
		}

		parents, err := userService.ParentsOf(tx, []uuid.UUID{s.SiswaID})
		if err != nil {
			return err
		}
		for _, p := range parents[s.SiswaID] {
			ptitle, pmsg := parentGradeNotification(s)
			if _, err := notifService.Create(tx, p.ID, ptitle, pmsg, constants.NotifInfo, map[string]any{
				"setoran_id": s.ID,
				"siswa_id":   s.SiswaID,
				"status":     s.Status,
			}); err != nil {
				return err
			}
			result.ParentsNotified++
		}

		result.Setoran = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Setoran %s dinilai %s (+%d poin) oleh guru %s", id, req.Status, result.PointsAdded, guruID)
	return &result, nil
}

func gradeNotification(s model.SetoranModel) (title, message, typ string) {
	surah := "kamu"
	if s.Surah != nil && *s.Surah != "" {
		surah = *s.Surah
	}
	if s.Status == constants.StatusDiterima {
		return "Setoran Diterima",
			fmt.Sprintf("Setoran %s %s diterima. Kamu mendapat %d poin.", s.Jenis, surah, s.Poin),
			constants.NotifAchievement
	}
	msg := fmt.Sprintf("Setoran %s %s belum diterima.", s.Jenis, surah)
	if s.Catatan != nil && *s.Catatan != "" {
		msg += " Catatan guru: " + *s.Catatan
	}
	return "Setoran Perlu Diperbaiki", msg, constants.NotifInfo
}

func parentGradeNotification(s model.SetoranModel) (title, message string) {
	surah := ""
	if s.Surah != nil && *s.Surah != "" {
		surah = " " + *s.Surah
	}
	if s.Status == constants.StatusDiterima {
		return "Setoran Anak Diterima",
			fmt.Sprintf("Setoran %s%s anak Anda diterima (+%d poin).", s.Jenis, surah, s.Poin)
	}
	return "Setoran Anak Perlu Diperbaiki",
		fmt.Sprintf("Setoran %s%s anak Anda belum diterima.", s.Jenis, surah)
}

/* =========================
   Hapus (siswa, selama pending)
========================= */

// Delete melakukan soft delete; file media dihapus di background lalu baris dihapus permanen.
// Kalau hapus media gagal, reaper yang akan mencoba lagi.
func Delete(db *gorm.DB, up storage.Uploader, siswaID, id uuid.UUID) error {
	s, err := findByID(db, id)
	if err != nil {
		return err
	}
	if s.SiswaID != siswaID {
		return ErrSetoranForbidden
	}
	if s.Status != constants.StatusPending {
		return ErrOnlyPendingDelete
	}
	res := db.Where("status = ?", constants.StatusPending).Delete(&model.SetoranModel{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete setoran")
	}
	if res.RowsAffected == 0 {
		return ErrOnlyPendingDelete
	}

	if s.FileRef != nil && up != nil {
		go func(ref string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := purgeMedia(ctx, db.Session(&gorm.Session{NewDB: true}).WithContext(ctx), up, s.ID, ref); err != nil {
				log.Printf("[WARN] Hapus media setoran %s gagal, akan dicoba reaper: %v", s.ID, err)
			}
		}(*s.FileRef)
	}
	return nil
}

func purgeMedia(ctx context.Context, db *gorm.DB, up storage.Uploader, id uuid.UUID, ref string) error {
	if err := up.Delete(ctx, ref); err != nil {
		return err
	}
	return db.Unscoped().Delete(&model.SetoranModel{}, "id = ?", id).Error
}

// ReapDeletedMedia menghapus media setoran yang sudah di-soft-delete lebih lama dari olderThan.
func ReapDeletedMedia(ctx context.Context, db *gorm.DB, up storage.Uploader, olderThan time.Duration) (int, error) {
	if up == nil {
		return 0, nil
	}
	var rows []model.SetoranModel
	err := db.WithContext(ctx).Unscoped().
		Select("id, file_ref").
		Where("deleted_at IS NOT NULL AND deleted_at < ? AND file_ref IS NOT NULL", time.Now().Add(-olderThan)).
		Limit(200).
		Find(&rows).Error
	if err != nil {
		return 0, pkgerrors.Wrap(err, "cari setoran terhapus")
	}

	n := 0
	for _, r := range rows {
		if err := purgeMedia(ctx, db.WithContext(ctx), up, r.ID, *r.FileRef); err != nil {
			log.Printf("[REAPER WARN] setoran %s: %v", r.ID, err)
			continue
		}
		n++
	}
	return n, nil
}
