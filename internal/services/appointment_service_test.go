package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

func TestAppointmentCreateRejectsInvalidTimeRange(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	actor := &models.User{ID: 3, TenantID: 1, Role: models.RolePractitioner}

	// The actor defaults as practitioner and must resolve in-tenant first.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	_, err := svc.Create(actor, CreateAppointmentInput{
		StartsAt: start,
		EndsAt:   start.Add(-30 * time.Minute),
	})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, "invalid_time_range", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateDefaultsPractitionerToActor(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	actor := &models.User{ID: 3, TenantID: 1, Role: models.RolePractitioner}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	appt, err := svc.Create(actor, CreateAppointmentInput{
		StartsAt: start,
		EndsAt:   start.Add(50 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, appt.PractitionerID)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidAppointmentStatus(t *testing.T) {
	assert.True(t, validAppointmentStatus(models.AppointmentScheduled))
	assert.True(t, validAppointmentStatus(models.AppointmentCancelled))
	assert.True(t, validAppointmentStatus(models.AppointmentCompleted))
	assert.False(t, validAppointmentStatus("rescheduled"))
	assert.False(t, validAppointmentStatus(""))
}

func TestAppointmentChangeStatusRejectsUnknown(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAppointmentService(db)

	actor := &models.User{ID: 3, TenantID: 1, Role: models.RolePractitioner}

	_, err := svc.ChangeStatus(actor, 21, "teleported")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, "invalid_status", apperr.CodeOf(err))
}
