package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/helpers/dbtest"
)

const (
	sqlLockUser      = `SELECT \* FROM "users" WHERE id = .* FOR UPDATE`
	sqlFindUser      = `SELECT \* FROM "users" WHERE id = `
	sqlOrganizeCode  = `SELECT \* FROM "organizes" WHERE \(?code = .* AND is_active = `
	sqlSetOrganize   = `UPDATE "users" SET "organize_id"=`
	sqlEnsurePoints  = `INSERT INTO "siswa_poin" .* ON CONFLICT \("siswa_id"\) DO NOTHING`
	sqlRemoveStudent = `UPDATE "users" SET "organize_id"=.* WHERE \(?id = .* AND organize_id = .* AND role = `
)

func userRow(id uuid.UUID, role string, orgID *uuid.UUID) *sqlmock.Rows {
	var org interface{}
	if orgID != nil {
		org = orgID.String()
	}
	return dbtest.Rows("id", "name", "email", "role", "organize_id", "is_active").
		AddRow(id.String(), "Zaid", "zaid@example.com", role, org, true)
}

func expectRosterInvalidated(mock redismock.ClientMock, orgID uuid.UUID) {
	prefix := "leaderboard:org:" + orgID.String() + ":"
	mock.ExpectDel(prefix+"all", prefix+"hafalan", prefix+"quiz").SetVal(0)
}

func TestJoin_AlreadyJoined(t *testing.T) {
	db, mock := dbtest.New(t)
	userID, current := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLockUser).WillReturnRows(userRow(userID, constants.RoleSiswa, &current))
	mock.ExpectRollback()

	_, err := Join(db, userID, "abc123")
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoin_UnknownCode(t *testing.T) {
	db, mock := dbtest.New(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLockUser).WillReturnRows(userRow(userID, constants.RoleSiswa, nil))
	mock.ExpectQuery(sqlOrganizeCode).WillReturnRows(dbtest.Rows("id"))
	mock.ExpectRollback()

	_, err := Join(db, userID, "zzzzzz")
	assert.ErrorIs(t, err, ErrCodeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoin_SiswaGetsPointsAndFreshRoster(t *testing.T) {
	db, mock := dbtest.New(t)
	rmock := dbtest.UseRedis(t)
	userID, orgID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLockUser).WillReturnRows(userRow(userID, constants.RoleSiswa, nil))
	mock.ExpectQuery(sqlOrganizeCode).WillReturnRows(
		dbtest.Rows("id", "name", "guru_id", "code", "is_active").
			AddRow(orgID.String(), "Tahfidz A", uuid.NewString(), "ABC123", true))
	mock.ExpectExec(sqlSetOrganize).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(sqlEnsurePoints).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectCommit()
	expectRosterInvalidated(rmock, orgID)

	org, err := Join(db, userID, " abc123 ")
	require.NoError(t, err)
	assert.Equal(t, orgID, org.ID)
	assert.Equal(t, "ABC123", org.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestLeave_InvalidatesRoster(t *testing.T) {
	db, mock := dbtest.New(t)
	rmock := dbtest.UseRedis(t)
	userID, orgID := uuid.New(), uuid.New()

	mock.ExpectQuery(sqlFindUser).WillReturnRows(userRow(userID, constants.RoleSiswa, &orgID))
	mock.ExpectBegin()
	mock.ExpectExec(sqlSetOrganize).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectRosterInvalidated(rmock, orgID)

	require.NoError(t, Leave(db, userID))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestLeave_GuruRefused(t *testing.T) {
	db, mock := dbtest.New(t)
	userID, orgID := uuid.New(), uuid.New()

	mock.ExpectQuery(sqlFindUser).WillReturnRows(userRow(userID, constants.RoleGuru, &orgID))

	assert.ErrorIs(t, Leave(db, userID), ErrGuruCannotLeave)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveStudent(t *testing.T) {
	t.Run("anggota kelas", func(t *testing.T) {
		db, mock := dbtest.New(t)
		rmock := dbtest.UseRedis(t)
		orgID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(sqlRemoveStudent).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectRosterInvalidated(rmock, orgID)

		require.NoError(t, RemoveStudent(db, orgID, uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("bukan anggota", func(t *testing.T) {
		db, mock := dbtest.New(t)

		mock.ExpectBegin()
		mock.ExpectExec(sqlRemoveStudent).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, RemoveStudent(db, uuid.New(), uuid.New()), ErrStudentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
