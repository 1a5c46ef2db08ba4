package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

func TestValidSubscriptionStatus(t *testing.T) {
	for _, status := range []string{
		models.SubscriptionTrial,
		models.SubscriptionActive,
		models.SubscriptionCancelled,
		models.SubscriptionExpired,
	} {
		assert.True(t, validSubscriptionStatus(status), status)
	}
	assert.False(t, validSubscriptionStatus("paused"))
}

func TestSubscriptionCreateRejectsUnknownPlan(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubscriptionService(db)

	actor := &models.User{ID: 1, TenantID: 2, Role: models.RoleOwner}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscription_plans" WHERE id = \$1`).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(actor, CreateSubscriptionInput{PlanID: 77})
	assert.Equal(t, apperr.KindBadReference, apperr.KindOf(err))
	assert.Equal(t, "plan_not_found", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionCreateDefaultsToTrial(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubscriptionService(db)

	actor := &models.User{ID: 1, TenantID: 2, Role: models.RoleOwner}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscription_plans" WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	sub, err := svc.Create(actor, CreateSubscriptionInput{PlanID: 3})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTrial, sub.Status)
	assert.False(t, sub.StartsAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionCancelAlreadyCancelled(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSubscriptionService(db)

	actor := &models.User{ID: 1, TenantID: 2, Role: models.RoleOwner}

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(8, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "status"}).
			AddRow(8, 2, models.SubscriptionCancelled))

	_, err := svc.Cancel(actor, 8)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, "already_cancelled", apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
