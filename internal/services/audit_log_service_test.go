package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogListClampsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditLogService(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE tenant_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(500))
	mock.ExpectQuery(`SELECT (.+) FROM "audit_logs" WHERE tenant_id = \$1 (.+) LIMIT \$2`).
		WithArgs(3, auditMaxLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id"}).AddRow(1, 3))

	logs, total, err := svc.List(3, AuditLogFilter{Page: 1, Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(500), total)
	assert.Len(t, logs, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogListFiltersByActionAndEntity(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditLogService(db)

	action := "DELETE"
	entity := "client"

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE tenant_id = \$1 AND action = \$2 AND entity_type = \$3`).
		WithArgs(3, "DELETE", "client").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM "audit_logs" WHERE tenant_id = \$1 AND action = \$2 AND entity_type = \$3`).
		WithArgs(3, "DELETE", "client", auditDefaultLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "action"}).
			AddRow(1, 3, "DELETE").
			AddRow(2, 3, "DELETE"))

	logs, total, err := svc.List(3, AuditLogFilter{Action: &action, EntityType: &entity})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogGetScopedToTenant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditLogService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "audit_logs" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(40, 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(3, 40)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
