package service

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/quiz/quizzes/dto"
	helper "iqro_backend/internals/helpers"
)

// Kolom sheet pertama: question | A | B | C | D | correct (huruf) | poin | difficulty | category.
// Baris 1 adalah header.
const (
	colQuestion = iota
	colA
	colB
	colC
	colD
	colCorrect
	colPoin
	colDifficulty
	colCategory
)

const optionLetters = "ABCD"

// ParseQuizSheet membaca file xlsx menjadi request quiz. Baris yang tidak valid
// dilewati dan dilaporkan, baris valid tetap diimpor.
func ParseQuizSheet(r io.Reader) ([]dto.CreateQuizRequest, []dto.ImportRowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("gagal membuka file excel: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] Gagal menutup file excel: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("file excel tidak memiliki sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("gagal membaca sheet %s: %w", sheet, err)
	}

	reqs := make([]dto.CreateQuizRequest, 0, len(rows))
	rowErrs := make([]dto.ImportRowError, 0)
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		req, err := parseRow(row)
		if err != nil {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: i + 1, Message: err.Error()})
			continue
		}
		req.Normalize()
		if errs := helper.ValidateStruct(&req); errs != nil {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: i + 1, Message: firstValidationMessage(errs)})
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, rowErrs, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (dto.CreateQuizRequest, error) {
	var req dto.CreateQuizRequest
	req.Question = cell(row, colQuestion)

	letter := strings.ToUpper(cell(row, colCorrect))
	if len(letter) != 1 || !strings.Contains(optionLetters, letter) {
		return req, fmt.Errorf("kolom correct harus salah satu dari A, B, C, D")
	}

	correct := -1
	for i, col := range []int{colA, colB, colC, colD} {
		opt := cell(row, col)
		if opt == "" {
			continue
		}
		if string(optionLetters[i]) == letter {
			correct = len(req.Options)
		}
		req.Options = append(req.Options, opt)
	}
	if correct < 0 {
		return req, fmt.Errorf("opsi %s kosong", letter)
	}
	req.CorrectOption = &correct

	if p := cell(row, colPoin); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return req, fmt.Errorf("poin harus angka")
		}
		req.Poin = &n
	}

	req.Difficulty = strings.ToLower(cell(row, colDifficulty))
	if req.Difficulty != "" && !constants.IsValidDifficulty(req.Difficulty) {
		return req, fmt.Errorf("difficulty harus mudah, sedang, atau sulit")
	}
	if cat := cell(row, colCategory); cat != "" {
		req.Category = &cat
	}
	return req, nil
}

func firstValidationMessage(errs map[string][]string) string {
	for field, msgs := range errs {
		if len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return "data tidak valid"
}
