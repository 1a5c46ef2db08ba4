package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

// A client owned by another tenant answers plain not-found, same as a row
// that does not exist at all.
func TestClientGetCrossTenantMiss(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewClientService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "clients" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(44, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(2, 44)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "client_not_found", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientCreateRejectsForeignPractitioner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewClientService(db)

	actor := &models.User{ID: 1, TenantID: 2, Role: models.RoleOwner}
	foreign := uint(99)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(99, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(actor, CreateClientInput{
		PrimaryPractitionerID: &foreign,
		FirstName:             "Deniz",
		LastName:              "Kaya",
	})
	assert.Equal(t, apperr.KindBadReference, apperr.KindOf(err))
	assert.Equal(t, "practitioner_not_in_tenant", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientCreateWritesAuditInSameTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewClientService(db)

	actor := &models.User{ID: 1, TenantID: 2, Role: models.RoleOwner}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	client, err := svc.Create(actor, CreateClientInput{
		FirstName: "Deniz",
		LastName:  "Kaya",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), client.ID)
	assert.Equal(t, uint(2), client.TenantID)
	assert.Equal(t, "active", client.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
