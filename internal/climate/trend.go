package climate

import (
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
)

// TrendDays is the fixed width of a trend window.
const TrendDays = 7

var weekdayLabels = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
}

type DayTrend struct {
	Date        string   `json:"date"`
	Weekday     string   `json:"weekday"`
	RecordCount int      `json:"record_count"`
	Average     *float64 `json:"average"`
	Band        Band     `json:"band"`
	BandLabel   string   `json:"band_label"`

	mean float64
}

type Trend struct {
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Days      []DayTrend `json:"days"`
	Average   *float64   `json:"average"`
	Band      Band       `json:"band"`
	BandLabel string     `json:"band_label"`
	BestDay   *DayTrend  `json:"best_day,omitempty"`
	WorstDay  *DayTrend  `json:"worst_day,omitempty"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ComputeTrend buckets records into the seven calendar days starting at
// startDay (in startDay's location). Records outside the window are ignored.
// Each day is scored on its own without a privacy floor; callers gate the
// whole window before calling. Empty days report BandNoData and no average.
func ComputeTrend(records []*model.MoodRecord, startDay time.Time) Trend {
	start := StartOfDay(startDay)
	loc := start.Location()

	buckets := make([][]*model.MoodRecord, TrendDays)
	for _, r := range records {
		day := StartOfDay(r.CreatedAt.In(loc))
		for i := 0; i < TrendDays; i++ {
			if day.Equal(start.AddDate(0, 0, i)) {
				buckets[i] = append(buckets[i], r)
				break
			}
		}
	}

	trend := Trend{
		Start: start.Format(time.DateOnly),
		End:   start.AddDate(0, 0, TrendDays-1).Format(time.DateOnly),
		Days:  make([]DayTrend, TrendDays),
	}

	var sum float64
	var filled int
	best, worst := -1, -1
	for i := 0; i < TrendDays; i++ {
		date := start.AddDate(0, 0, i)
		dt := DayTrend{
			Date:        date.Format(time.DateOnly),
			Weekday:     weekdayLabels[date.Weekday()],
			RecordCount: len(buckets[i]),
			Band:        BandNoData,
		}

		if len(buckets[i]) > 0 {
			mean := meanScore(buckets[i])
			avg := round1(mean)
			dt.mean = mean
			dt.Average = &avg
			dt.Band = ClassifyDaily(mean)

			sum += mean
			filled++
			if best == -1 || mean > trend.Days[best].mean {
				best = i
			}
			if worst == -1 || mean < trend.Days[worst].mean {
				worst = i
			}
		}
		dt.BandLabel = dt.Band.Label()
		trend.Days[i] = dt
	}

	if filled == 0 {
		trend.Band = BandNoData
		trend.BandLabel = BandNoData.Label()
		return trend
	}

	mean := sum / float64(filled)
	avg := round1(mean)
	trend.Average = &avg
	trend.Band = ClassifyWeekly(mean)
	trend.BandLabel = trend.Band.Label()

	bestDay := trend.Days[best]
	worstDay := trend.Days[worst]
	trend.BestDay = &bestDay
	trend.WorstDay = &worstDay

	return trend
}
