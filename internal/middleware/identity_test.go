package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runIdentity(t *testing.T, devDefault bool, header string) (*httptest.ResponseRecorder, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-User-Id", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured interface{}
	h := Identity(devDefault)(func(c echo.Context) error {
		captured = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, captured
}

func TestIdentityRequiresHeader(t *testing.T) {
	rec, captured := runIdentity(t, false, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestIdentityDevFallback(t *testing.T) {
	rec, captured := runIdentity(t, true, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(1), captured)
}

func TestIdentityValidHeader(t *testing.T) {
	rec, captured := runIdentity(t, false, "37")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(37), captured)
}

func TestIdentityRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"abc", "-1", "0", "1.5"} {
		rec, captured := runIdentity(t, false, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "header %q", bad)
		assert.Nil(t, captured, "header %q", bad)
	}
}
