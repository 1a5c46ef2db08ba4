package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/auth"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "harmonia-wellness", Slugify("Harmonia Wellness"))
	assert.Equal(t, "my-practice", Slugify("  My_Practice  "))
	assert.Equal(t, "solo", Slugify("solo"))
}

func userRow(t *testing.T, id, tenantID uint, email, password string, active bool) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "tenant_id", "email", "password_hash", "role", "is_active"}).
		AddRow(id, tenantID, email, hash, "owner", active)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(userRow(t, 1, 1, "ana@example.com", "right-pass", true))

	_, err := svc.Login("ana@example.com", "wrong-pass")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "invalid_credentials", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login("ghost@example.com", "whatever")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "invalid_credentials", apperr.CodeOf(err))
}

func TestLoginInactiveUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(userRow(t, 1, 1, "ana@example.com", "right-pass", false))

	_, err := svc.Login("ana@example.com", "right-pass")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "invalid_credentials", apperr.CodeOf(err))
}

func TestLoginStampsLastLoginAndAudits(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(userRow(t, 1, 2, "ana@example.com", "right-pass", true))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user, err := svc.Login("ana@example.com", "right-pass")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, uint(2), user.TenantID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A duplicate owner email must roll the tenant insert back with it.
func TestRegisterRollsBackOnDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tenants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_users_email"`))
	mock.ExpectRollback()

	_, err := svc.Register(RegisterInput{
		TenantName: "Harmonia Wellness",
		FullName:   "Ana Owner",
		Email:      "ana@example.com",
		Password:   "s3cret-pass",
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCreatesTenantOwnerAndAudit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tenants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user, err := svc.Register(RegisterInput{
		TenantName: "Harmonia Wellness",
		FullName:   "Ana Owner",
		Email:      "Ana@Example.com",
		Password:   "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.TenantID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "owner", user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	// The lookup must use the normalized address.
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login("  Ana@Example.COM ", "whatever")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
