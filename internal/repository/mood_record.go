package repository

import (
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/jmoiron/sqlx"
)

type MoodRecordRepository interface {
	Create(record *model.MoodRecord) error
	// Since returns userID's records created at or after since, oldest first.
	Since(userID string, since time.Time) ([]*model.MoodRecord, error)
	// ForUsers returns records of userIDs created in [start, end).
	ForUsers(userIDs []string, start, end time.Time) ([]*model.MoodRecord, error)
}

type moodRecordRepository struct {
	db *sqlx.DB
}

func NewMoodRecordRepository(db *sqlx.DB) MoodRecordRepository {
	return &moodRecordRepository{db: db}
}

func (r *moodRecordRepository) Create(record *model.MoodRecord) error {
	query := `INSERT INTO mood_records (id, user_id, mood, emotion, place, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		record.ID,
		record.UserID,
		record.Mood,
		record.Emotion,
		record.Place,
		record.Comment,
		record.CreatedAt.UTC(),
	)

	return err
}

func (r *moodRecordRepository) Since(userID string, since time.Time) ([]*model.MoodRecord, error) {
	records := []*model.MoodRecord{}
	query := `SELECT * FROM mood_records
	          WHERE user_id = $1 AND created_at >= $2
	          ORDER BY created_at ASC`

	err := r.db.Select(&records, query, userID, since.UTC())
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *moodRecordRepository) ForUsers(userIDs []string, start, end time.Time) ([]*model.MoodRecord, error) {
	records := []*model.MoodRecord{}
	if len(userIDs) == 0 {
		return records, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM mood_records
	          WHERE user_id IN (?) AND created_at >= ? AND created_at < ?
	          ORDER BY created_at ASC`, userIDs, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&records, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}
