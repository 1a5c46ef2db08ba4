package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPathID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := pathID(c, "id")
		assert.False(t, ok, "value %q", raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	require.NoError(t, err)
	c.Request = req
	return c
}

func TestQueryUint(t *testing.T) {
	c := newQueryContext(t, "client_id=7&bad=x")

	v := queryUint(c, "client_id")
	require.NotNil(t, v)
	assert.Equal(t, uint(7), *v)

	assert.Nil(t, queryUint(c, "bad"))
	assert.Nil(t, queryUint(c, "missing"))
}

func TestQueryInt(t *testing.T) {
	c := newQueryContext(t, "page=3&junk=x")

	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 1, queryInt(c, "junk", 1))
	assert.Equal(t, 50, queryInt(c, "limit", 50))
}

func TestQueryTime(t *testing.T) {
	c := newQueryContext(t, "from=2026-03-01T00:00:00Z&bad=yesterday")

	v := queryTime(c, "from")
	require.NotNil(t, v)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), v.UTC())

	assert.Nil(t, queryTime(c, "bad"))
	assert.Nil(t, queryTime(c, "missing"))
}
