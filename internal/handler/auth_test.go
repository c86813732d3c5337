package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/utils"
)

func TestLoginRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	for _, body := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"username":"  ","password":"pw"}`,
	} {
		c, rec := newTestContext(http.MethodPost, "/", body, 0)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestSignupRejectsBadBirthDate(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newTestContext(http.MethodPost, "/",
		`{"username":"alice","password":"pw","birthDate":"31-12-1999"}`, 0)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate(t *testing.T) {
	h := &AuthHandler{Cfg: config.Config{JWTSecret: "secret"}}

	tok, err := utils.NewAccessToken("secret", 5, "alice", 10)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "false"},
		{"not bearer", "Basic abc", "false"},
		{"garbage token", "Bearer nope", "false"},
		{"valid token", "Bearer " + tok.Token, "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/", "", 0)
			if tc.header != "" {
				c.Request().Header.Set("Authorization", tc.header)
			}
			require.NoError(t, h.Validate(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, strings.TrimSpace(rec.Body.String()))
		})
	}
}
