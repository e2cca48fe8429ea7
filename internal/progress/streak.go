package progress

import (
	"sort"
	"time"
)

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{year: y, month: m, day: d}
}

func (d civilDay) before() civilDay {
	return dayOf(time.Date(d.year, d.month, d.day-1, 12, 0, 0, 0, time.UTC))
}

func (d civilDay) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// CalculateStreak counts consecutive calendar days with at least one entry,
// walking backwards from the most recent entry day. Time of day is ignored
// and several entries on one day count once. Days are read in each value's
// own location, so callers should convert to a single timezone first.
//
// The most recent day always counts; whether it is still "today" is the
// caller's concern (see ActiveStreak).
func CalculateStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	unique := uniqueDaysDesc(dates)

	streak := 1
	for i := 1; i < len(unique); i++ {
		if unique[i] != unique[i-1].before() {
			break
		}
		streak++
	}

	return streak
}

// ActiveStreak reports current only while it is still alive: the last entry
// happened today or yesterday in now's location. A streak whose last entry
// is older has lapsed and reads as 0.
func ActiveStreak(current int, lastEntry *time.Time, now time.Time) int {
	if current <= 0 || lastEntry == nil || lastEntry.IsZero() {
		return 0
	}

	last := dayOf(lastEntry.In(now.Location()))
	today := dayOf(now)
	if last == today || last == today.before() {
		return current
	}

	return 0
}

// LongestRun is the longest run of consecutive entry days anywhere in dates.
func LongestRun(dates []time.Time) int {
	unique := uniqueDaysDesc(dates)
	if len(unique) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(unique); i++ {
		if unique[i] == unique[i-1].before() {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	return longest
}

func uniqueDaysDesc(dates []time.Time) []civilDay {
	days := make(map[civilDay]struct{}, len(dates))
	for _, d := range dates {
		days[dayOf(d)] = struct{}{}
	}

	unique := make([]civilDay, 0, len(days))
	for d := range days {
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].time().After(unique[j].time())
	})
	return unique
}
