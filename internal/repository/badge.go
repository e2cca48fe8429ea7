package repository

import (
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BadgeRepository interface {
	// ByUserID returns the user's unlock records, oldest first.
	ByUserID(userID string) ([]*model.UserBadge, error)
	// Unlock inserts the record unless (userID, badgeID) already exists.
	// It reports whether a new row was written.
	Unlock(userID, badgeID string, at time.Time) (bool, error)
	// MarkNotified flags the given badges as shown to the user.
	MarkNotified(userID string, badgeIDs []string) (int64, error)
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ByUserID(userID string) ([]*model.UserBadge, error) {
	badges := []*model.UserBadge{}
	query := `SELECT * FROM user_badges WHERE user_id = $1 ORDER BY unlocked_at ASC, badge_id ASC`

	err := r.db.Select(&badges, query, userID)
	if err != nil {
		return nil, err
	}

	return badges, nil
}

func (r *badgeRepository) Unlock(userID, badgeID string, at time.Time) (bool, error) {
	query := `INSERT INTO user_badges (id, user_id, badge_id, unlocked_at, notified)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, badge_id) DO NOTHING`

	result, err := r.db.Exec(query, uuid.New().String(), userID, badgeID, at.UTC(), false)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *badgeRepository) MarkNotified(userID string, badgeIDs []string) (int64, error) {
	if len(badgeIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE user_badges SET notified = ?
	          WHERE user_id = ? AND badge_id IN (?) AND notified = ?`, true, userID, badgeIDs, false)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
