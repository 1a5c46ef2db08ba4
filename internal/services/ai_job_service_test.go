package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/models"
)

func TestAIJobCreateDefaultsStatusPending(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAIJobService(db)

	actor := &models.User{ID: 1, TenantID: 4, Role: models.RolePractitioner}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ai_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	job, err := svc.Create(actor, CreateAIJobInput{
		Type:         "summarize_note",
		InputRefType: "session_note",
		InputRefID:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", job.Status)
	assert.Equal(t, uint(4), job.TenantID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failed audit insert must take the job insert down with it.
func TestAIJobCreateRollsBackWhenAuditFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAIJobService(db)

	actor := &models.User{ID: 1, TenantID: 4, Role: models.RolePractitioner}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ai_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Create(actor, CreateAIJobInput{
		Type:         "summarize_note",
		InputRefType: "session_note",
		InputRefID:   5,
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAIJobListFilters(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAIJobService(db)

	status := "done"
	mock.ExpectQuery(`SELECT (.+) FROM "ai_jobs" WHERE tenant_id = \$1 AND status = \$2`).
		WithArgs(4, "done").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "status"}).
			AddRow(1, 4, "done").
			AddRow(2, 4, "done"))

	jobs, err := svc.List(4, AIJobFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
