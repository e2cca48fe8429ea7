package model

import "time"

type BadgeCategory string

const (
	BadgeCategoryStreak  BadgeCategory = "streak"
	BadgeCategoryTotal   BadgeCategory = "total"
	BadgeCategoryVariety BadgeCategory = "variety"
)

type BadgeDefinition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    BadgeCategory `json:"category"`
	Criteria    int           `json:"criteria"`
	Emoji       string        `json:"emoji"`
	Color       string        `json:"color"`
}

type UserBadge struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	BadgeID    string    `db:"badge_id" json:"badge_id"`
	UnlockedAt time.Time `db:"unlocked_at" json:"unlocked_at"`
	Notified   bool      `db:"notified" json:"notified"`
}

// BadgeStatus is a badge definition joined with a user's state for it.
type BadgeStatus struct {
	BadgeDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Notified   bool       `json:"notified"`
	Current    int        `json:"current"`
	Percent    int        `json:"percent"`
}
