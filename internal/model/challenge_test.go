package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func TestChallengeActiveOn(t *testing.T) {
	c := Challenge{StartDate: d("2024-01-10"), EndDate: d("2024-01-20")}

	assert.False(t, c.ActiveOn(d("2024-01-09")))
	assert.True(t, c.ActiveOn(d("2024-01-10"))) // first day counts
	assert.True(t, c.ActiveOn(d("2024-01-15")))
	assert.True(t, c.ActiveOn(d("2024-01-20"))) // last day counts
	assert.False(t, c.ActiveOn(d("2024-01-21")))
}
