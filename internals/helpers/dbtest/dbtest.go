// Package dbtest menyiapkan gorm di atas go-sqlmock dan redis di atas redismock untuk test service.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "iqro_backend/internals/databases"
)

// New: *gorm.DB dialek postgres yang semua query-nya harus diharapkan lewat mock.
func New(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// UseRedis mengganti database.Redis selama test berjalan.
func UseRedis(t *testing.T) redismock.ClientMock {
	t.Helper()

	client, mock := redismock.NewClientMock()
	prev := database.Redis
	database.Redis = client
	t.Cleanup(func() {
		database.Redis = prev
		_ = client.Close()
	})
	return mock
}

// Rows: helper singkat untuk sqlmock.NewRows.
func Rows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// Returning: baris hasil INSERT ... RETURNING "id".
func Returning(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}
