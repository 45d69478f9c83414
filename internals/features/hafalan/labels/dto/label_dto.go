package dto

import (
	"strings"

	"github.com/google/uuid"
)

type CreateLabelRequest struct {
	SiswaID    uuid.UUID `json:"siswa_id" validate:"required"`
	Juz        int       `json:"juz" validate:"required,min=1,max=30"`
	Keterangan *string   `json:"keterangan" validate:"omitempty,max=500"`
}

func (r *CreateLabelRequest) Normalize() {
	if r.Keterangan != nil {
		v := strings.TrimSpace(*r.Keterangan)
		if v == "" {
			r.Keterangan = nil
		} else {
			r.Keterangan = &v
		}
	}
}
