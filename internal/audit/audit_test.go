package audit

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestRecordInsertsEntry(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	userID := uint(7)
	err := db.Transaction(func(tx *gorm.DB) error {
		return Record(tx, 3, &userID, "client", 44, ActionCreate, Changes{
			After: map[string]any{"first_name": "Deniz"},
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordNilChanges(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return Record(tx, 3, nil, "user", 7, ActionLogin, nil)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Record must surface insert failures so the enclosing transaction rolls back.
func TestRecordPropagatesInsertError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return Record(tx, 3, nil, "user", 7, ActionDelete, nil)
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
