package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/hafalan/setoran/dto"
	"iqro_backend/internals/helpers/dbtest"
)

const (
	sqlGuruOrganize  = `SELECT \* FROM "organizes" WHERE guru_id`
	sqlLockSetoran   = `SELECT \* FROM "setoran" WHERE id = .* FOR UPDATE`
	sqlUpdateSetoran = `UPDATE "setoran" SET`
	sqlEnsurePoints  = `INSERT INTO "siswa_poin" .* ON CONFLICT \("siswa_id"\) DO NOTHING`
	sqlAddPoints     = `UPDATE "siswa_poin" SET .*poin_hafalan \+ .*total_poin \+`
	sqlPointLog      = `INSERT INTO "point_logs"`
	sqlJuzLabel      = `INSERT INTO "labels" .* ON CONFLICT \("siswa_id","juz"\) DO NOTHING`
	sqlNotification  = `INSERT INTO "notifications"`
	sqlParents       = `FROM parent_children pc JOIN users u ON u.id = pc.parent_id`
)

type gradeFixture struct {
	guruID, orgID, siswaID, setoranID uuid.UUID
}

func newGradeFixture() gradeFixture {
	return gradeFixture{guruID: uuid.New(), orgID: uuid.New(), siswaID: uuid.New(), setoranID: uuid.New()}
}

func (f gradeFixture) expectOrganize(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(sqlGuruOrganize).WillReturnRows(
		dbtest.Rows("id", "guru_id", "name", "code", "is_active").
			AddRow(f.orgID.String(), f.guruID.String(), "Tahfidz A", "ABC123", true))
}

func (f gradeFixture) expectLocked(mock sqlmock.Sqlmock, orgID uuid.UUID, status string) {
	mock.ExpectQuery(sqlLockSetoran).WillReturnRows(
		dbtest.Rows("id", "siswa_id", "organize_id", "file_url", "jenis", "status", "surah", "juz", "poin").
			AddRow(f.setoranID.String(), f.siswaID.String(), orgID.String(), "https://cdn.example/a.m4a",
				constants.JenisHafalan, status, "An-Naba", 30, 0))
}

func TestGrade_OnlyFromPending(t *testing.T) {
	for _, status := range []string{constants.StatusDiterima, constants.StatusDitolak} {
		t.Run(status, func(t *testing.T) {
			db, mock := dbtest.New(t)
			f := newGradeFixture()

			f.expectOrganize(mock)
			mock.ExpectBegin()
			f.expectLocked(mock, f.orgID, status)
			mock.ExpectRollback()

			_, err := Grade(db, f.guruID, f.setoranID, dto.GradeSetoranRequest{Status: constants.StatusDiterima})
			assert.ErrorIs(t, err, ErrAlreadyGraded)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGrade_OtherOrganizeForbidden(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newGradeFixture()

	f.expectOrganize(mock)
	mock.ExpectBegin()
	f.expectLocked(mock, uuid.New(), constants.StatusPending)
	mock.ExpectRollback()

	_, err := Grade(db, f.guruID, f.setoranID, dto.GradeSetoranRequest{Status: constants.StatusDiterima})
	assert.ErrorIs(t, err, ErrNotYourOrganize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrade_AcceptedAddsPointsOnce(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newGradeFixture()
	parentID := uuid.New()

	f.expectOrganize(mock)
	mock.ExpectBegin()
	f.expectLocked(mock, f.orgID, constants.StatusPending)
	mock.ExpectExec(sqlUpdateSetoran).WillReturnResult(sqlmock.NewResult(0, 1))

	// ledger: baris siswa_poin sudah ada, lalu increment + log
	mock.ExpectQuery(sqlEnsurePoints).WillReturnRows(dbtest.Rows("id"))
	mock.ExpectExec(sqlAddPoints).
		WithArgs(10, 10, sqlmock.AnyArg(), f.siswaID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(sqlPointLog).WillReturnRows(dbtest.Returning(uuid.NewString()))

	// label juz 30 sudah pernah diberikan
	mock.ExpectQuery(sqlJuzLabel).WillReturnRows(dbtest.Rows("id"))

	mock.ExpectQuery(sqlNotification).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectQuery(sqlParents).WillReturnRows(
		dbtest.Rows("child_id", "id", "name", "email", "role", "is_active").
			AddRow(f.siswaID.String(), parentID.String(), "Ibu Aisyah", "ortu@example.com", constants.RoleOrtu, true))
	mock.ExpectQuery(sqlNotification).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectCommit()

	res, err := Grade(db, f.guruID, f.setoranID, dto.GradeSetoranRequest{Status: constants.StatusDiterima})
	require.NoError(t, err)
	assert.Equal(t, 10, res.PointsAdded)
	assert.False(t, res.LabelCreated)
	assert.Equal(t, 1, res.ParentsNotified)
	assert.Equal(t, constants.StatusDiterima, res.Setoran.Status)
	assert.Equal(t, 10, res.Setoran.Poin)
	require.NotNil(t, res.Setoran.GuruID)
	assert.Equal(t, f.guruID, *res.Setoran.GuruID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrade_RejectedAddsNoPoints(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newGradeFixture()

	f.expectOrganize(mock)
	mock.ExpectBegin()
	f.expectLocked(mock, f.orgID, constants.StatusPending)
	mock.ExpectExec(sqlUpdateSetoran).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(sqlNotification).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectQuery(sqlParents).WillReturnRows(dbtest.Rows("child_id", "id"))
	mock.ExpectCommit()

	res, err := Grade(db, f.guruID, f.setoranID, dto.GradeSetoranRequest{
		Status:  constants.StatusDitolak,
		Poin:    intPtr(50),
		Catatan: strPtr("Perbaiki mad"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.PointsAdded)
	assert.Equal(t, 0, res.Setoran.Poin)
	assert.Equal(t, 0, res.ParentsNotified)
	assert.False(t, res.LabelCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
