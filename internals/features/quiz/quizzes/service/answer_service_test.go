package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/helpers/dbtest"
)

const (
	sqlSiswaOrganize = `SELECT id, organize_id FROM "users" WHERE id = `
	sqlVisibleQuiz   = `SELECT \* FROM "quizzes" WHERE is_active = .* organize_id IS NULL`
	sqlCountAnswer   = `SELECT count\(\*\) FROM "quiz_answers" WHERE \(?quiz_id = .* AND siswa_id = `
	sqlInsertAnswer  = `INSERT INTO "quiz_answers"`
	sqlEnsurePoints  = `INSERT INTO "siswa_poin" .* ON CONFLICT \("siswa_id"\) DO NOTHING`
	sqlAddQuizPoints = `UPDATE "siswa_poin" SET .*poin_quiz \+ .*total_poin \+`
	sqlPointLog      = `INSERT INTO "point_logs"`
)

type answerFixture struct {
	siswaID, orgID, quizID uuid.UUID
}

func newAnswerFixture() answerFixture {
	return answerFixture{siswaID: uuid.New(), orgID: uuid.New(), quizID: uuid.New()}
}

// expectQuiz: siswa di kelas orgID, quiz umum dengan kunci index 1 dan 10 poin.
func (f answerFixture) expectQuiz(mock sqlmock.Sqlmock, answered int) {
	mock.ExpectQuery(sqlSiswaOrganize).WillReturnRows(
		dbtest.Rows("id", "organize_id").AddRow(f.siswaID.String(), f.orgID.String()))
	mock.ExpectBegin()
	mock.ExpectQuery(sqlVisibleQuiz).WillReturnRows(
		dbtest.Rows("id", "question", "options", "correct_option", "poin", "organize_id", "is_active").
			AddRow(f.quizID.String(), "Surah pertama dalam mushaf?", "{Al-Fatihah,Al-Baqarah,An-Nas}", 1, 10, nil, true))
	mock.ExpectQuery(sqlCountAnswer).WillReturnRows(dbtest.Rows("count").AddRow(answered))
}

func TestAnswer_SecondAnswerConflict(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newAnswerFixture()

	f.expectQuiz(mock, 1)
	mock.ExpectRollback()

	_, _, err := Answer(db, f.siswaID, f.quizID, 1)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_ConcurrentDuplicateConflict(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newAnswerFixture()

	f.expectQuiz(mock, 0)
	mock.ExpectQuery(sqlInsertAnswer).WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	_, _, err := Answer(db, f.siswaID, f.quizID, 1)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_CorrectAddsQuizPoints(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newAnswerFixture()

	f.expectQuiz(mock, 0)
	mock.ExpectQuery(sqlInsertAnswer).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectQuery(sqlEnsurePoints).WillReturnRows(dbtest.Rows("id"))
	mock.ExpectExec(sqlAddQuizPoints).
		WithArgs(10, 10, sqlmock.AnyArg(), f.siswaID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(sqlPointLog).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectCommit()

	res, orgID, err := Answer(db, f.siswaID, f.quizID, 1)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 10, res.Poin)
	assert.Equal(t, "Al-Baqarah", res.CorrectAnswer)
	require.NotNil(t, orgID)
	assert.Equal(t, f.orgID, *orgID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_WrongAddsNoPoints(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newAnswerFixture()

	f.expectQuiz(mock, 0)
	mock.ExpectQuery(sqlInsertAnswer).WillReturnRows(dbtest.Returning(uuid.NewString()))
	mock.ExpectCommit()

	res, _, err := Answer(db, f.siswaID, f.quizID, 2)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0, res.Poin)
	assert.Equal(t, 1, res.CorrectOption)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_OptionOutOfRange(t *testing.T) {
	db, mock := dbtest.New(t)
	f := newAnswerFixture()

	mock.ExpectQuery(sqlSiswaOrganize).WillReturnRows(
		dbtest.Rows("id", "organize_id").AddRow(f.siswaID.String(), f.orgID.String()))
	mock.ExpectBegin()
	mock.ExpectQuery(sqlVisibleQuiz).WillReturnRows(
		dbtest.Rows("id", "options", "correct_option", "poin").
			AddRow(f.quizID.String(), "{A,B}", 0, 10))
	mock.ExpectRollback()

	_, _, err := Answer(db, f.siswaID, f.quizID, 5)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}
