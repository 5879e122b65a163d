package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingGormRepository(t *testing.T) {
	repo := NewBookingGormRepository(nil)
	assert.NotNil(t, repo)
}

// Concurrent creates for one business day must contend on the same
// advisory lock pair, and nothing else.
func TestLockKey(t *testing.T) {
	biz, day := lockKey(42, "2026-09-07")
	assert.Equal(t, int32(42), biz)

	bizAgain, dayAgain := lockKey(42, "2026-09-07")
	assert.Equal(t, biz, bizAgain)
	assert.Equal(t, day, dayAgain)

	_, nextDay := lockKey(42, "2026-09-08")
	assert.Equal(t, day+1, nextDay)

	otherBiz, sameDay := lockKey(43, "2026-09-07")
	assert.NotEqual(t, biz, otherBiz)
	assert.Equal(t, day, sameDay)
}
