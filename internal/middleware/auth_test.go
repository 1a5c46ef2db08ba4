package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harmoniahq/practice-api/internal/auth"
	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const uniform401 = `{"error_code":"unauthorized","message":"Could not validate credentials."}`

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

func newAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *config.Config) {
	t.Helper()

	db, mock := newMockDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTLMinutes: 60}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg, db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})
	return r, mock, cfg
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

func TestAuthMalformedHeader(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doRequest(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

func TestAuthGarbageToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doRequest(r, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

func TestAuthWrongSecret(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	other := &config.Config{JWTSecret: "other-secret", TokenTTLMinutes: 60}
	token, err := auth.IssueToken(other, &models.User{ID: 42, TenantID: 1})
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

// A token for a deleted user and one for an inactive user both answer the
// same body as a missing header.
func TestAuthUnknownUser(t *testing.T) {
	r, mock, cfg := newAuthRouter(t)

	token, err := auth.IssueToken(cfg, &models.User{ID: 42, TenantID: 1})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

func TestAuthInactiveUser(t *testing.T) {
	r, mock, cfg := newAuthRouter(t)

	token, err := auth.IssueToken(cfg, &models.User{ID: 42, TenantID: 1})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "role", "is_active"}).
			AddRow(42, 1, "owner", false))

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, uniform401, w.Body.String())
}

func TestAuthActiveUserPasses(t *testing.T) {
	r, mock, cfg := newAuthRouter(t)

	token, err := auth.IssueToken(cfg, &models.User{ID: 42, TenantID: 1, Role: "owner"})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "role", "is_active"}).
			AddRow(42, 1, "owner", true))

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
}
