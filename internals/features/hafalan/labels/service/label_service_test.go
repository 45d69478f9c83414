package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/features/hafalan/labels/dto"
	"iqro_backend/internals/helpers/dbtest"
)

const sqlInsertLabel = `INSERT INTO "labels" .* ON CONFLICT \("siswa_id","juz"\) DO NOTHING RETURNING "id"`

func TestJuzDoneText(t *testing.T) {
	tests := []struct {
		juz  int
		want string
	}{
		{1, "Juz 1 selesai - Hafalan diterima"},
		{30, "Juz 30 selesai - Hafalan diterima"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JuzDoneText(tt.juz))
	}
}

func TestCreate_DuplicateJuzConflict(t *testing.T) {
	db, mock := dbtest.New(t)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlInsertLabel).WillReturnRows(dbtest.Rows("id"))
	mock.ExpectCommit()

	_, err := Create(db, uuid.New(), dto.CreateLabelRequest{SiswaID: uuid.New(), Juz: 30})
	assert.ErrorIs(t, err, ErrLabelExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NewLabel(t *testing.T) {
	db, mock := dbtest.New(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(sqlInsertLabel).WillReturnRows(dbtest.Returning(id.String()))
	mock.ExpectCommit()

	label, err := Create(db, uuid.New(), dto.CreateLabelRequest{SiswaID: uuid.New(), Juz: 1})
	require.NoError(t, err)
	assert.Equal(t, id, label.ID)
	assert.Equal(t, 1, label.Juz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureJuzLabel(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		created bool
	}{
		{"baru", dbtest.Returning(uuid.NewString()), true},
		{"sudah ada", dbtest.Rows("id"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := dbtest.New(t)
			mock.ExpectBegin()
			mock.ExpectQuery(sqlInsertLabel).WillReturnRows(tt.rows)
			mock.ExpectCommit()

			created, err := EnsureJuzLabel(db, uuid.New(), 5, nil, JuzDoneText(5))
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
