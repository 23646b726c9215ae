package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserLimiter_Disabled(t *testing.T) {
	l := newUserLimiter(0, 5)
	assert.Nil(t, l)
	for range 100 {
		assert.True(t, l.allow("u1"))
	}
}

func TestUserLimiter_PerUserBurst(t *testing.T) {
	l := newUserLimiter(1, 2)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("u1"))
	assert.True(t, l.allow("u1"))
	assert.False(t, l.allow("u1"))
	assert.True(t, l.allow("u2"))

	now = now.Add(time.Second)
	assert.True(t, l.allow("u1"))
}

func TestUserLimiter_EvictsIdle(t *testing.T) {
	l := newUserLimiter(1, 1)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.lastCleanup = now

	l.allow("u1")
	now = now.Add(limiterTTL + limiterCleanup)
	l.allow("u2")

	assert.NotContains(t, l.entries, "u1")
	assert.Contains(t, l.entries, "u2")
}
