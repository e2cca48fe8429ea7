// Package pattern scans one student's recent records for warning signs and
// turns them into recommendations.
package pattern

import (
	"sort"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/textnorm"
)

// DefaultWindowDays is how far back the analyzer looks by default.
const DefaultWindowDays = 3

type Type string

const (
	TypeEmotionalDecline Type = "emotional_decline"
	TypeMoodSwings       Type = "mood_swings"
	TypeGratitudeGap     Type = "gratitude_gap"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Pattern struct {
	Type        Type     `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

type Analysis struct {
	Patterns        []Pattern        `json:"patterns"`
	Recommendations []Recommendation `json:"recommendations"`
	NeedsImmediate  bool             `json:"needs_immediate"`
	MoodCount       int              `json:"mood_count"`
	GratitudeCount  int              `json:"gratitude_count"`
}

var negativeEmotions = []string{"triste", "enojado", "ansioso"}

// IsNegative reports whether the record's emotion is in the negative set.
func IsNegative(r *model.MoodRecord) bool {
	emotion := textnorm.Fold(r.Emotion)
	for _, neg := range negativeEmotions {
		// Accept gendered forms: enojada, ansiosa.
		if emotion == neg || (len(neg) > 1 && emotion == neg[:len(neg)-1]+"a") {
			return true
		}
	}
	return false
}

// Analyze runs the three heuristics over records already limited to the
// analysis window. Input order does not matter.
func Analyze(moods []*model.MoodRecord, gratitude []*model.GratitudeEntry) Analysis {
	sorted := append([]*model.MoodRecord(nil), moods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var patterns []Pattern
	if p, ok := emotionalDecline(sorted); ok {
		patterns = append(patterns, p)
	}
	if p, ok := moodSwings(sorted); ok {
		patterns = append(patterns, p)
	}
	if len(gratitude) == 0 {
		patterns = append(patterns, Pattern{
			Type:        TypeGratitudeGap,
			Severity:    SeverityLow,
			Description: "No registraste gratitud en los últimos días.",
			Suggestions: []string{
				"Escribe una cosa pequeña que agradezcas hoy.",
				"Piensa en una persona que te ayudó esta semana.",
			},
		})
	}

	analysis := Analysis{
		Patterns:       patterns,
		MoodCount:      len(moods),
		GratitudeCount: len(gratitude),
	}
	for _, p := range patterns {
		if p.Severity == SeverityHigh {
			analysis.NeedsImmediate = true
		}
	}
	analysis.Recommendations = Recommend(patterns)

	if analysis.Patterns == nil {
		analysis.Patterns = []Pattern{}
	}
	return analysis
}

func emotionalDecline(moods []*model.MoodRecord) (Pattern, bool) {
	negatives := 0
	for _, m := range moods {
		if IsNegative(m) {
			negatives++
		}
	}
	if negatives < 2 {
		return Pattern{}, false
	}

	severity := SeverityMedium
	if negatives >= 3 {
		severity = SeverityHigh
	}

	return Pattern{
		Type:        TypeEmotionalDecline,
		Severity:    severity,
		Description: "Registraste varias emociones difíciles en los últimos días.",
		Suggestions: []string{
			"Habla con alguien de confianza sobre cómo te sientes.",
			"Prueba una respiración lenta de cinco minutos.",
		},
	}, true
}

// moodSwings counts flips between negative and non-negative in chronological order.
func moodSwings(moods []*model.MoodRecord) (Pattern, bool) {
	transitions := 0
	for i := 1; i < len(moods); i++ {
		if IsNegative(moods[i]) != IsNegative(moods[i-1]) {
			transitions++
		}
	}
	if transitions < 2 {
		return Pattern{}, false
	}

	return Pattern{
		Type:        TypeMoodSwings,
		Severity:    SeverityMedium,
		Description: "Tus emociones cambiaron varias veces en poco tiempo.",
		Suggestions: []string{
			"Anota qué pasó antes de cada cambio de ánimo.",
			"Mantén horarios regulares de sueño y comida.",
		},
	}, true
}
