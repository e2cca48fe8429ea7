package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/jmoiron/sqlx"
)

type GratitudeEntryRepository interface {
	Create(entry *model.GratitudeEntry) error
	// Entries returns every entry for userID, oldest first.
	Entries(userID string) ([]*model.GratitudeEntry, error)
	// Since returns entries dated on or after since, oldest first.
	Since(userID string, since time.Time) ([]*model.GratitudeEntry, error)
	// LatestEntryDate is the newest entry_date of the user, nil before the first entry.
	LatestEntryDate(userID string) (*time.Time, error)
}

type gratitudeEntryRepository struct {
	db *sqlx.DB
}

func NewGratitudeEntryRepository(db *sqlx.DB) GratitudeEntryRepository {
	return &gratitudeEntryRepository{db: db}
}

func (r *gratitudeEntryRepository) Create(entry *model.GratitudeEntry) error {
	query := `INSERT INTO gratitude_entries (id, user_id, text, entry_date, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Text,
		entry.EntryDate.UTC(),
		entry.CreatedAt.UTC(),
	)

	return err
}

func (r *gratitudeEntryRepository) Entries(userID string) ([]*model.GratitudeEntry, error) {
	entries := []*model.GratitudeEntry{}
	query := `SELECT * FROM gratitude_entries WHERE user_id = $1 ORDER BY entry_date ASC, created_at ASC`

	err := r.db.Select(&entries, query, userID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *gratitudeEntryRepository) Since(userID string, since time.Time) ([]*model.GratitudeEntry, error) {
	entries := []*model.GratitudeEntry{}
	query := `SELECT * FROM gratitude_entries
	          WHERE user_id = $1 AND entry_date >= $2
	          ORDER BY entry_date ASC, created_at ASC`

	err := r.db.Select(&entries, query, userID, since.UTC())
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *gratitudeEntryRepository) LatestEntryDate(userID string) (*time.Time, error) {
	var day time.Time
	query := `SELECT entry_date FROM gratitude_entries
	          WHERE user_id = $1
	          ORDER BY entry_date DESC
	          LIMIT 1`

	err := r.db.Get(&day, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &day, nil
}
