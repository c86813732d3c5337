package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContext builds an echo context with an optional resolved user
// identity, mirroring what the Identity middleware would have set.
func newTestContext(method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestShareSetStatusRejectsUnknownStatus(t *testing.T) {
	h := &ShareHandler{}
	for _, bad := range []string{"", "PENDING", "accepted", "DONE"} {
		c, rec := newTestContext(http.MethodPut, "/?status="+bad, "", 7)
		c.SetParamNames("id")
		c.SetParamValues("5")

		require.NoError(t, h.SetStatus(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", bad)
	}
}

func TestShareSetStatusRejectsBadID(t *testing.T) {
	h := &ShareHandler{}
	c, rec := newTestContext(http.MethodPut, "/?status=ACCEPTED", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.SetStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareCreateRejectsSelfShare(t *testing.T) {
	h := &ShareHandler{}
	c, rec := newTestContext(http.MethodPost, "/", `{"toUserId":7,"challengeId":3}`, 7)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareCreateRequiresFields(t *testing.T) {
	h := &ShareHandler{}
	c, rec := newTestContext(http.MethodPost, "/", `{"toUserId":0,"challengeId":0}`, 7)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareEndpointsRequireIdentity(t *testing.T) {
	h := &ShareHandler{}
	c, rec := newTestContext(http.MethodGet, "/", "", 0)

	require.NoError(t, h.SearchUsers(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
