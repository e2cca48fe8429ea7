package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bienestar-app/bienestar/internal/model"
)

const (
	MaxGratitudeLength = 1000
	MaxLabelLength     = 50
	MaxCommentLength   = 500
)

func ValidateGratitudeText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("text", "gratitude text is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxGratitudeLength {
		return invalid("text", "gratitude text is too long (max %d characters)", MaxGratitudeLength)
	}
	return nil
}

// ValidateEntryDate rejects days after today in loc.
func ValidateEntryDate(date, now time.Time, loc *time.Location) error {
	y, m, d := date.In(loc).Date()
	ty, tm, td := now.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return invalid("date", "date cannot be in the future")
	}
	return nil
}

func ValidateMood(mood model.MoodLevel) error {
	if !mood.Valid() {
		return invalid("mood", "mood must be one of %s", joinMoods())
	}
	return nil
}

// ValidateLabel checks a short free-form tag such as an emotion or a place.
func ValidateLabel(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return invalid(field, "%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) > MaxLabelLength {
		return invalid(field, "%s is too long (max %d characters)", field, MaxLabelLength)
	}
	return nil
}

func ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return invalid("comment", "comment is too long (max %d characters)", MaxCommentLength)
	}
	return nil
}

func joinMoods() string {
	names := make([]string, len(model.MoodLevels))
	for i, m := range model.MoodLevels {
		names[i] = `"` + string(m) + `"`
	}
	return strings.Join(names, ", ")
}
