package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"iqro_backend/internals/features/hafalan/setoran/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// SubmitSetoranRequest bisa datang sebagai multipart (dengan file) atau JSON (dengan file_url).
type SubmitSetoranRequest struct {
	Surah       string  `json:"surah" form:"surah" validate:"required,notblank,max=100"`
	Juz         int     `json:"juz" form:"juz" validate:"required,min=1,max=30"`
	Jenis       string  `json:"jenis" form:"jenis" validate:"required,jenis"`
	AyatMulai   *int    `json:"ayat_mulai" form:"ayat_mulai" validate:"omitempty,min=1"`
	AyatSelesai *int    `json:"ayat_selesai" form:"ayat_selesai" validate:"omitempty,min=1"`
	Catatan     *string `json:"catatan" form:"catatan" validate:"omitempty,max=1000"`
	FileURL     string  `json:"file_url" form:"file_url" validate:"omitempty,url"`
}

func (r *SubmitSetoranRequest) Normalize() {
	r.Surah = strings.TrimSpace(r.Surah)
	r.Jenis = strings.ToLower(strings.TrimSpace(r.Jenis))
	r.FileURL = strings.TrimSpace(r.FileURL)
	if r.Catatan != nil {
		v := strings.TrimSpace(*r.Catatan)
		if v == "" {
			r.Catatan = nil
		} else {
			r.Catatan = &v
		}
	}
}

// AyatRangeValid: ayat_selesai tidak boleh lebih kecil dari ayat_mulai.
func (r *SubmitSetoranRequest) AyatRangeValid() bool {
	if r.AyatMulai == nil || r.AyatSelesai == nil {
		return true
	}
	return *r.AyatSelesai >= *r.AyatMulai
}

type GradeSetoranRequest struct {
	Status  string  `json:"status" validate:"required,oneof=diterima ditolak"`
	Poin    *int    `json:"poin" validate:"omitempty,min=0,max=1000"`
	Catatan *string `json:"catatan" validate:"omitempty,max=1000"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type SetoranSummary struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Diterima  int64 `json:"diterima"`
	Ditolak   int64 `json:"ditolak"`
	TotalPoin int64 `json:"total_poin"`
}

type MySetoranResponse struct {
	Summary SetoranSummary       `json:"summary"`
	Items   []model.SetoranModel `json:"items"`
}

type PendingSetoranItem struct {
	ID          uuid.UUID `json:"id"`
	SiswaID     uuid.UUID `json:"siswa_id"`
	SiswaName   string    `json:"siswa_name"`
	FileURL     string    `json:"file_url"`
	Jenis       string    `json:"jenis"`
	Tanggal     time.Time `json:"tanggal"`
	Surah       *string   `json:"surah,omitempty"`
	Juz         *int      `json:"juz,omitempty"`
	AyatMulai   *int      `json:"ayat_mulai,omitempty"`
	AyatSelesai *int      `json:"ayat_selesai,omitempty"`
	Catatan     *string   `json:"catatan,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GradeResult struct {
	Setoran         model.SetoranModel `json:"setoran"`
	PointsAdded     int                `json:"points_added"`
	LabelCreated    bool               `json:"label_created"`
	ParentsNotified int                `json:"parents_notified"`
}
