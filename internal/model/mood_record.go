package model

import (
	"time"
)

// MoodLevel is one of five ordered self-reported mood levels.
type MoodLevel string

const (
	MoodNotSoGood MoodLevel = "No tan bien"
	MoodSoSo      MoodLevel = "Más o menos"
	MoodGood      MoodLevel = "Bien"
	MoodVeryGood  MoodLevel = "Muy bien"
	MoodExcellent MoodLevel = "Excelente"
)

// MoodLevels lists every level from lowest to highest.
var MoodLevels = []MoodLevel{
	MoodNotSoGood,
	MoodSoSo,
	MoodGood,
	MoodVeryGood,
	MoodExcellent,
}

func (m MoodLevel) Valid() bool {
	for _, level := range MoodLevels {
		if m == level {
			return true
		}
	}
	return false
}

type MoodRecord struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Mood      MoodLevel `db:"mood" json:"mood"`
	Emotion   string    `db:"emotion" json:"emotion"`
	Place     string    `db:"place" json:"place"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
