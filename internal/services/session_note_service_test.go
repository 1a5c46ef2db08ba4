package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

// Notes carry no tenant column; the lookup must join through sessions.
func TestSessionNoteGetJoinsSessionsForTenantScope(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSessionNoteService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "session_notes" JOIN sessions ON sessions\.id = session_notes\.session_id WHERE session_notes\.id = \$1 AND sessions\.tenant_id = \$2`).
		WithArgs(15, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(2, 15)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "session_note_not_found", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionNoteCreateDefaultsAuthorToActor(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSessionNoteService(db)

	actor := &models.User{ID: 6, TenantID: 2, Role: models.RolePractitioner}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sessions" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(9, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(6, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "session_notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	note, err := svc.Create(actor, CreateSessionNoteInput{
		SessionID: 9,
		Type:      "progress",
		Content:   "Client reports improved sleep.",
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, note.AuthorID)
	assert.True(t, note.IsPrivate)
	require.NoError(t, mock.ExpectationsWereMet())
}
