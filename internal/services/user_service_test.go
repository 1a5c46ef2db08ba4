package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

func TestUserDeleteSelfRejected(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	actor := &models.User{ID: 7, TenantID: 3, Role: models.RoleOwner}

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(7, 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id"}).AddRow(7, 3))

	err := svc.Delete(actor, 7)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, "cannot_delete_self", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetScopedToTenant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(8, 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(3, 8)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "user_not_found", apperr.CodeOf(err))
}

func TestUserSnapshotExcludesPasswordHash(t *testing.T) {
	u := &models.User{
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$secret",
		FullName:     "Ana",
		Role:         models.RolePractitioner,
		IsActive:     true,
	}

	snap := userSnapshot(u)
	assert.NotContains(t, snap, "password_hash")
	assert.NotContains(t, snap, "password")
	assert.Equal(t, "ana@example.com", snap["email"])
}
