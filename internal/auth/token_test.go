package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/models"
)

func testConfig(ttlMinutes int) *config.Config {
	return &config.Config{
		JWTSecret:       "unit-test-secret",
		TokenTTLMinutes: ttlMinutes,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	cfg := testConfig(60)
	user := &models.User{
		ID:       42,
		TenantID: 7,
		Role:     models.RoleOwner,
	}

	token, err := IssueToken(cfg, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, uint(7), claims.TenantID)
	assert.Equal(t, models.RoleOwner, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, TenantID: 1, Role: models.RoleStaff}

	token, err := IssueToken(testConfig(60), user)
	require.NoError(t, err)

	other := &config.Config{JWTSecret: "different-secret", TokenTTLMinutes: 60}
	_, err = ParseToken(other, token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	user := &models.User{ID: 1, TenantID: 1, Role: models.RoleStaff}

	token, err := IssueToken(testConfig(-10), user)
	require.NoError(t, err)

	_, err = ParseToken(testConfig(60), token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testConfig(60), "not.a.token")
	assert.Error(t, err)
}

func TestClaimsUserIDRejectsNonNumericSubject(t *testing.T) {
	c := &Claims{}
	c.Subject = "abc"

	_, err := c.UserID()
	assert.Error(t, err)
}
