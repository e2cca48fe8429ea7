package model

import (
	"time"
)

type GratitudeEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	EntryDate time.Time `db:"entry_date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
