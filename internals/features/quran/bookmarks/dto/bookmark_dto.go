package dto

import "strings"

type CreateBookmarkRequest struct {
	SurahNumber int     `json:"surah_number" validate:"required,min=1,max=114"`
	AyahNumber  int     `json:"ayah_number" validate:"required,min=1,max=286"`
	Note        *string `json:"note" validate:"omitempty,max=500"`
}

type UpdateBookmarkRequest struct {
	SurahNumber *int    `json:"surah_number" validate:"omitempty,min=1,max=114"`
	AyahNumber  *int    `json:"ayah_number" validate:"omitempty,min=1,max=286"`
	Note        *string `json:"note" validate:"omitempty,max=500"`
}

func (r *CreateBookmarkRequest) Normalize() {
	r.Note = cleanNote(r.Note)
}

func (r *UpdateBookmarkRequest) Normalize() {
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		r.Note = &v
	}
}

func cleanNote(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
