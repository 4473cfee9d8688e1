package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestActiveTargetInsideWindow(t *testing.T) {
	// Window for Dec 12 runs Dec 10 17:00 .. Dec 11 11:00.
	w, ok := ActiveTarget(at(2025, 12, 10, 18, 30))
	require.True(t, ok)
	assert.Equal(t, at(2025, 12, 12, 0, 0), w.Target)
	assert.Equal(t, at(2025, 12, 10, 17, 0), w.Opens)
	assert.Equal(t, at(2025, 12, 11, 11, 0), w.Closes)

	// Next morning, still before 11:00, same target.
	w, ok = ActiveTarget(at(2025, 12, 11, 10, 59))
	require.True(t, ok)
	assert.Equal(t, at(2025, 12, 12, 0, 0), w.Target)
}

func TestActiveTargetBoundaries(t *testing.T) {
	// Opening instant is inside, closing instant is outside.
	w, ok := ActiveTarget(at(2025, 12, 10, 17, 0))
	require.True(t, ok)
	assert.Equal(t, at(2025, 12, 12, 0, 0), w.Target)

	_, ok = ActiveTarget(at(2025, 12, 11, 11, 0))
	assert.False(t, ok, "window closes at 11:00 sharp")
}

func TestActiveTargetGapBetweenWindows(t *testing.T) {
	// Between 11:00 and 17:00 no window is open.
	_, ok := ActiveTarget(at(2025, 12, 11, 13, 0))
	assert.False(t, ok)
}
