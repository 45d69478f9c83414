package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iqro_backend/internals/features/quran/bookmarks/dto"
	"iqro_backend/internals/features/quran/bookmarks/model"
	helper "iqro_backend/internals/helpers"
)

func ptr[T any](v T) *T { return &v }

func TestApplyUpdate(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateBookmarkRequest
		wantSurah int
		wantAyah  int
		wantNote  *string
	}{
		{"kosong tidak mengubah", dto.UpdateBookmarkRequest{}, 2, 255, ptr("ayat kursi")},
		{"pindah ayat", dto.UpdateBookmarkRequest{SurahNumber: ptr(36), AyahNumber: ptr(1)}, 36, 1, ptr("ayat kursi")},
		{"hapus catatan", dto.UpdateBookmarkRequest{Note: ptr("")}, 2, 255, nil},
		{"ganti catatan", dto.UpdateBookmarkRequest{Note: ptr("hafalkan")}, 2, 255, ptr("hafalkan")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &model.QuranBookmarkModel{SurahNumber: 2, AyahNumber: 255, Note: ptr("ayat kursi")}
			ApplyUpdate(b, tt.req)
			assert.Equal(t, tt.wantSurah, b.SurahNumber)
			assert.Equal(t, tt.wantAyah, b.AyahNumber)
			assert.Equal(t, tt.wantNote, b.Note)
		})
	}
}

func TestCreateBookmarkRequest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.CreateBookmarkRequest
		valid bool
	}{
		{"valid", dto.CreateBookmarkRequest{SurahNumber: 1, AyahNumber: 7}, true},
		{"surah nol", dto.CreateBookmarkRequest{SurahNumber: 0, AyahNumber: 1}, false},
		{"surah 115", dto.CreateBookmarkRequest{SurahNumber: 115, AyahNumber: 1}, false},
		{"ayat nol", dto.CreateBookmarkRequest{SurahNumber: 114, AyahNumber: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := helper.ValidateStruct(&tt.req)
			if tt.valid {
				assert.Nil(t, errs)
			} else {
				assert.NotNil(t, errs)
			}
		})
	}
}

func TestCreateBookmarkRequest_NormalizeBlankNote(t *testing.T) {
	r := dto.CreateBookmarkRequest{SurahNumber: 1, AyahNumber: 1, Note: ptr("   ")}
	r.Normalize()
	assert.Nil(t, r.Note)
}
