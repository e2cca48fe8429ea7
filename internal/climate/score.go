// Package climate aggregates cohort mood records into an "emotional climate":
// a privacy-gated average score with a qualitative band, label distributions
// and a seven day trend.
package climate

import (
	"math"

	"github.com/bienestar-app/bienestar/internal/model"
)

// UnknownMoodScore is used for stored labels outside the mood scale.
const UnknownMoodScore = 2.5

// DefaultMinimumSample is the privacy floor applied when none is configured.
const DefaultMinimumSample = 15

var moodScores = map[model.MoodLevel]float64{
	model.MoodNotSoGood: 1,
	model.MoodSoSo:      2,
	model.MoodGood:      3,
	model.MoodVeryGood:  4,
	model.MoodExcellent: 5,
}

// Score maps a mood level onto the 1..5 scale.
func Score(m model.MoodLevel) float64 {
	s, ok := moodScores[m]
	if !ok {
		return UnknownMoodScore
	}
	return s
}

type Band string

const (
	BandExcellent          Band = "excellent"
	BandVeryPositive       Band = "very_positive"
	BandPositive           Band = "positive"
	BandStable             Band = "stable"
	BandNeedsSomeAttention Band = "needs_some_attention"
	BandNeedsAttention     Band = "needs_attention"
	BandNoData             Band = "no_data"
)

var bandLabels = map[Band]string{
	BandExcellent:          "Excelente",
	BandVeryPositive:       "Muy positivo",
	BandPositive:           "Positivo",
	BandStable:             "Estable",
	BandNeedsSomeAttention: "Requiere algo de atención",
	BandNeedsAttention:     "Requiere atención",
	BandNoData:             "Sin datos",
}

// Label is the display text for the band.
func (b Band) Label() string {
	return bandLabels[b]
}

// ClassifyDaily bands an unrounded mean for a single window.
func ClassifyDaily(mean float64) Band {
	switch {
	case mean >= 4.5:
		return BandExcellent
	case mean >= 3.5:
		return BandVeryPositive
	case mean >= 2.5:
		return BandPositive
	case mean >= 1.5:
		return BandNeedsSomeAttention
	default:
		return BandNeedsAttention
	}
}

// ClassifyWeekly bands the mean of daily means across a week.
func ClassifyWeekly(mean float64) Band {
	switch {
	case mean >= 4.0:
		return BandVeryPositive
	case mean >= 3.0:
		return BandPositive
	case mean >= 2.0:
		return BandStable
	default:
		return BandNeedsAttention
	}
}

// meanScore returns the unrounded mean; callers must not pass an empty slice.
func meanScore(records []*model.MoodRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += Score(r.Mood)
	}
	return sum / float64(len(records))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
