package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []any{"question", "A", "B", "C", "D", "correct", "poin", "difficulty", "category"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseQuizSheet(t *testing.T) {
	r := buildSheet(t, [][]any{
		{"Surah pertama dalam mushaf?", "Al-Fatihah", "Al-Baqarah", "An-Nas", "Al-Ikhlas", "A", "20", "Mudah", "Surah"},
		{"Jumlah juz Al-Quran?", "20", "", "30", "", "c", "", "", ""},
		{"Huruf salah", "x", "y", "", "", "E", "", "", ""},
		{},
		{"Opsi kosong", "x", "y", "", "", "D", "", "", ""},
		{"Difficulty aneh", "x", "y", "", "", "B", "", "ekstrem", ""},
		{"", "x", "y", "", "", "A", "", "", ""},
	})

	reqs, rowErrs, err := ParseQuizSheet(r)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	first := reqs[0]
	assert.Equal(t, "Surah pertama dalam mushaf?", first.Question)
	assert.Len(t, first.Options, 4)
	assert.Equal(t, 0, *first.CorrectOption)
	require.NotNil(t, first.Poin)
	assert.Equal(t, 20, *first.Poin)
	assert.Equal(t, "mudah", first.Difficulty)
	require.NotNil(t, first.Category)
	assert.Equal(t, "Surah", *first.Category)

	// opsi kosong dilewati, index mengikuti opsi yang terisi
	second := reqs[1]
	assert.Equal(t, []string{"20", "30"}, second.Options)
	assert.Equal(t, 1, *second.CorrectOption)
	assert.Nil(t, second.Poin)
	assert.Nil(t, second.Category)

	rows := make([]int, 0, len(rowErrs))
	for _, e := range rowErrs {
		rows = append(rows, e.Row)
		assert.NotEmpty(t, e.Message)
	}
	assert.Equal(t, []int{4, 6, 7, 8}, rows)
}

func TestParseQuizSheet_NotExcel(t *testing.T) {
	_, _, err := ParseQuizSheet(bytes.NewReader([]byte("bukan excel")))
	assert.Error(t, err)
}

func TestParseRow_CorrectLetterCaseInsensitive(t *testing.T) {
	req, err := parseRow([]string{"Q", "a", "b", "c", "d", "d"})
	require.NoError(t, err)
	assert.Equal(t, 3, *req.CorrectOption)
}
