package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/admin/dto"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtest"
)

func TestSetActive_CannotDeactivateSelf(t *testing.T) {
	id := uuid.New()
	_, err := SetActive(nil, id, id, false)
	assert.ErrorIs(t, err, ErrDeactivateSelf)
}

func TestListUsers_RejectsUnknownRole(t *testing.T) {
	_, _, err := ListUsers(nil, dto.UserFilter{Role: "superadmin"}, helper.Paging{Page: 1, PerPage: 20, Limit: 20})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

const (
	sqlSetActive  = `UPDATE "users" SET "is_active"=`
	sqlReloadUser = `SELECT \* FROM "users" WHERE id = `
)

func TestSetActive_DeactivatedSiswaLeavesLeaderboard(t *testing.T) {
	db, mock := dbtest.New(t)
	rmock := dbtest.UseRedis(t)
	userID, orgID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(sqlSetActive).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(sqlReloadUser).WillReturnRows(
		dbtest.Rows("id", "name", "role", "organize_id", "is_active").
			AddRow(userID.String(), "Zaid", constants.RoleSiswa, orgID.String(), false))
	prefix := "leaderboard:org:" + orgID.String() + ":"
	rmock.ExpectDel(prefix+"all", prefix+"hafalan", prefix+"quiz").SetVal(1)

	u, err := SetActive(db, uuid.New(), userID, false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSetActive_UnknownUser(t *testing.T) {
	db, mock := dbtest.New(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlSetActive).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := SetActive(db, uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
