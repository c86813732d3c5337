package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaveRejectsBadDate(t *testing.T) {
	h := &RecordHandler{}
	for _, body := range []string{
		`{"weight":70}`,
		`{"recordDate":"03/09/2024","weight":70}`,
	} {
		c, rec := newTestContext(http.MethodPost, "/", body, 7)
		require.NoError(t, h.Save(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRecordGetByDateRejectsBadDate(t *testing.T) {
	h := &RecordHandler{}
	c, rec := newTestContext(http.MethodGet, "/", "", 7)
	c.SetParamNames("date")
	c.SetParamValues("yesterday")

	require.NoError(t, h.GetByDate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordRangeValidation(t *testing.T) {
	h := &RecordHandler{}

	c, rec := newTestContext(http.MethodGet, "/?startDate=2024-01-10&endDate=2024-01-01", "", 7)
	require.NoError(t, h.ListRange(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/?startDate=2024-01-01", "", 7)
	require.NoError(t, h.ListRange(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChallengeListRejectsUnknownFilter(t *testing.T) {
	h := &ChallengeHandler{}
	c, rec := newTestContext(http.MethodGet, "/?filter=archived", "", 7)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChallengeCreateValidation(t *testing.T) {
	h := &ChallengeHandler{}
	for name, body := range map[string]string{
		"missing name":   `{"startDate":"2024-01-01","endDate":"2024-01-31"}`,
		"bad start":      `{"name":"cut","startDate":"Jan 1","endDate":"2024-01-31"}`,
		"inverted range": `{"name":"cut","startDate":"2024-01-31","endDate":"2024-01-01"}`,
	} {
		c, rec := newTestContext(http.MethodPost, "/", body, 7)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestRoutineValidation(t *testing.T) {
	h := &RoutineHandler{}

	c, rec := newTestContext(http.MethodPost, "/", `{"routineType":"NOON","routineItems":["a"]}`, 7)
	require.NoError(t, h.Save(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/", "", 7)
	c.SetParamNames("routineType")
	c.SetParamValues("NOON")
	require.NoError(t, h.GetByType(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodPost, "/", `{"checkDate":"not-a-date","routineType":"MORNING"}`, 7)
	require.NoError(t, h.SaveCheck(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
