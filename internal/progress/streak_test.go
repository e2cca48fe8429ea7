package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestCalculateStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, CalculateStreak(nil))
	assert.Equal(t, 0, CalculateStreak([]time.Time{}))
}

func TestCalculateStreak_SingleEntry(t *testing.T) {
	// An old entry still counts as a one day streak.
	assert.Equal(t, 1, CalculateStreak([]time.Time{day(2020, 1, 1, 9)}))
}

func TestCalculateStreak_Consecutive(t *testing.T) {
	dates := []time.Time{
		day(2025, 3, 10, 8),
		day(2025, 3, 9, 20),
		day(2025, 3, 8, 12),
	}
	assert.Equal(t, 3, CalculateStreak(dates))
}

func TestCalculateStreak_GapStopsCount(t *testing.T) {
	dates := []time.Time{
		day(2025, 3, 6, 8), // D-4
		day(2025, 3, 10, 8),
		day(2025, 3, 9, 8),
		day(2025, 3, 8, 8),
	}
	assert.Equal(t, 3, CalculateStreak(dates))
}

func TestCalculateStreak_SameDayCountsOnce(t *testing.T) {
	dates := []time.Time{
		day(2025, 3, 10, 8),
		day(2025, 3, 10, 22),
		day(2025, 3, 9, 7),
	}
	assert.Equal(t, 2, CalculateStreak(dates))

	assert.Equal(t, 1, CalculateStreak([]time.Time{day(2025, 3, 10, 1), day(2025, 3, 10, 23)}))
}

func TestCalculateStreak_UnorderedInput(t *testing.T) {
	dates := []time.Time{
		day(2025, 2, 27, 8),
		day(2025, 3, 1, 8),
		day(2025, 2, 28, 8),
	}
	assert.Equal(t, 3, CalculateStreak(dates), "streak crosses the month boundary")
}

func TestCalculateStreak_Bounds(t *testing.T) {
	sets := [][]time.Time{
		{day(2025, 1, 1, 0)},
		{day(2025, 1, 1, 0), day(2025, 1, 3, 0), day(2025, 1, 5, 0)},
		{day(2025, 1, 1, 0), day(2025, 1, 2, 0), day(2025, 1, 2, 5), day(2025, 1, 4, 0)},
	}
	for _, dates := range sets {
		unique := map[civilDay]bool{}
		for _, d := range dates {
			unique[dayOf(d)] = true
		}
		s := CalculateStreak(dates)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, len(unique))
	}
}

func TestActiveStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	today := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	stale := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, ActiveStreak(4, &today, now))
	assert.Equal(t, 4, ActiveStreak(4, &yesterday, now))
	assert.Equal(t, 0, ActiveStreak(4, &stale, now), "a lapsed streak reads as zero")
	assert.Equal(t, 0, ActiveStreak(4, nil, now))
	assert.Equal(t, 0, ActiveStreak(0, &today, now))
}

func TestActiveStreak_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, loc)
	// 2025-03-09 02:00 UTC is 2025-03-08 21:00 local, two days before now.
	last := time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, ActiveStreak(2, &last, now))
}

func TestLongestRun(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 3, day, 10, 0, 0, 0, time.UTC) }

	assert.Equal(t, 0, LongestRun(nil))
	assert.Equal(t, 1, LongestRun([]time.Time{d(5)}))
	// 1-2-3-4 then a gap, then 8-9
	assert.Equal(t, 4, LongestRun([]time.Time{d(9), d(1), d(2), d(3), d(3), d(4), d(8)}))
	assert.Equal(t, 2, CalculateStreak([]time.Time{d(9), d(1), d(2), d(3), d(4), d(8)}))
}
