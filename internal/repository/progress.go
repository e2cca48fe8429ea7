package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrProgressNotFound = errors.New("progress not found")
	// ErrProgressConflict means another writer changed the row since it was read.
	ErrProgressConflict = errors.New("progress was modified concurrently")
)

type ProgressRepository interface {
	ByUserID(userID string) (*model.UserProgress, error)
	// Create inserts progress at version 1.
	Create(progress *model.UserProgress) error
	// Update writes progress only if the stored version still equals
	// progress.Version, then bumps progress.Version.
	Update(progress *model.UserProgress) error
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ByUserID(userID string) (*model.UserProgress, error) {
	progress := &model.UserProgress{}
	err := r.db.Get(progress, `SELECT * FROM user_progress WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (r *progressRepository) Create(progress *model.UserProgress) error {
	now := time.Now().UTC()
	progress.Version = 1
	progress.CreatedAt = now
	progress.UpdatedAt = now

	query := `INSERT INTO user_progress
	          (user_id, current_streak, longest_streak, total_entries, last_entry_date, categories_used, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		progress.UserID,
		progress.CurrentStreak,
		progress.LongestStreak,
		progress.TotalEntries,
		utcPtr(progress.LastEntryDate),
		progress.CategoriesUsed,
		progress.Version,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrProgressConflict
	}

	return err
}

func (r *progressRepository) Update(progress *model.UserProgress) error {
	now := time.Now().UTC()
	query := `UPDATE user_progress
	          SET current_streak = $1, longest_streak = $2, total_entries = $3, last_entry_date = $4,
	              categories_used = $5, version = version + 1, updated_at = $6
	          WHERE user_id = $7 AND version = $8`

	result, err := r.db.Exec(query,
		progress.CurrentStreak,
		progress.LongestStreak,
		progress.TotalEntries,
		utcPtr(progress.LastEntryDate),
		progress.CategoriesUsed,
		now,
		progress.UserID,
		progress.Version,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProgressConflict
	}

	progress.Version++
	progress.UpdatedAt = now
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
