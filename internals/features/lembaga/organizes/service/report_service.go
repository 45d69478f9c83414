package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	attendanceModel "iqro_backend/internals/features/lembaga/attendance/model"
	"iqro_backend/internals/features/lembaga/organizes/model"
	"iqro_backend/internals/helpers/dbtime"
)

const (
	sheetSiswa     = "Siswa"
	sheetSetoran   = "Setoran"
	sheetKehadiran = "Kehadiran"
)

type ReportStudentRow struct {
	ID          uuid.UUID
	Name        string
	Email       string
	TotalPoin   int
	PoinHafalan int
	PoinQuiz    int
}

type ReportSetoranRow struct {
	Tanggal   time.Time
	SiswaName string
	Jenis     string
	Surah     *string
	Juz       *int
	Status    string
	Poin      int
	Catatan   *string
}

type ReportAttendanceRow struct {
	Date      time.Time
	SiswaName string
	Status    string
}

type OrganizeReport struct {
	Organize   model.OrganizeModel
	Students   []ReportStudentRow
	Setoran    []ReportSetoranRow
	Attendance []ReportAttendanceRow
}

// LoadOrganizeReport mengambil data laporan untuk satu kelas.
func LoadOrganizeReport(db *gorm.DB, org model.OrganizeModel) (*OrganizeReport, error) {
	rep := &OrganizeReport{Organize: org}

	if err := db.Table("users u").
		Select("u.id, u.name, u.email, COALESCE(sp.total_poin,0) AS total_poin, COALESCE(sp.poin_hafalan,0) AS poin_hafalan, COALESCE(sp.poin_quiz,0) AS poin_quiz").
		Joins("LEFT JOIN siswa_poin sp ON sp.siswa_id = u.id").
		Where("u.organize_id = ? AND u.role = ?", org.ID, constants.RoleSiswa).
		Order("u.name ASC").
		Scan(&rep.Students).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "report students")
	}

	if err := db.Table("setoran s").
		Select("s.tanggal, u.name AS siswa_name, s.jenis, s.surah, s.juz, s.status, s.poin, s.catatan").
		Joins("JOIN users u ON u.id = s.siswa_id").
		Where("s.organize_id = ? AND s.deleted_at IS NULL", org.ID).
		Order("s.tanggal DESC, s.created_at DESC").
		Scan(&rep.Setoran).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "report setoran")
	}

	if err := db.Model(&attendanceModel.AttendanceModel{}).
		Select("attendance.date, u.name AS siswa_name, attendance.status").
		Joins("JOIN users u ON u.id = attendance.student_id").
		Where("u.organize_id = ?", org.ID).
		Order("attendance.date DESC, u.name ASC").
		Scan(&rep.Attendance).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "report attendance")
	}
	return rep, nil
}

// BuildWorkbook menulis laporan ke tiga sheet: Siswa, Setoran, Kehadiran.
func BuildWorkbook(rep *OrganizeReport) (*excelize.File, error) {
	f := excelize.NewFile()

	// sheet default "Sheet1" diganti jadi Siswa
	if err := f.SetSheetName(f.GetSheetName(0), sheetSiswa); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetSetoran, sheetKehadiran} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9EAD3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	students := [][]interface{}{{"No", "Nama", "Email", "Total Poin", "Poin Hafalan", "Poin Quiz"}}
	for i, s := range rep.Students {
		students = append(students, []interface{}{i + 1, s.Name, s.Email, s.TotalPoin, s.PoinHafalan, s.PoinQuiz})
	}

	setoran := [][]interface{}{{"Tanggal", "Siswa", "Jenis", "Surah", "Juz", "Status", "Poin", "Catatan"}}
	for _, s := range rep.Setoran {
		setoran = append(setoran, []interface{}{
			s.Tanggal.Format(dbtime.DateLayout), s.SiswaName, s.Jenis, strOrEmpty(s.Surah), intOrEmpty(s.Juz), s.Status, s.Poin, strOrEmpty(s.Catatan),
		})
	}

	attendance := [][]interface{}{{"Tanggal", "Siswa", "Status"}}
	for _, a := range rep.Attendance {
		attendance = append(attendance, []interface{}{a.Date.Format(dbtime.DateLayout), a.SiswaName, a.Status})
	}

	for sheet, rows := range map[string][][]interface{}{
		sheetSiswa:     students,
		sheetSetoran:   setoran,
		sheetKehadiran: attendance,
	} {
		if err := writeRows(f, sheet, rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rows[0]))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func ReportFilename(org model.OrganizeModel, now time.Time) string {
	return fmt.Sprintf("laporan-%s-%s.xlsx", org.Code, now.Format("20060102"))
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
