package repository

import (
	"database/sql"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Create(profile *model.Profile) error
	UpdateName(userID, name string) error
	// StudentIDs lists student user ids in group, or in every group when group is empty.
	StudentIDs(group string) ([]string, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	if profile.Role == "" {
		profile.Role = model.RoleStudent
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, user_id, name, role, group_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, profile.ID, profile.UserID, profile.Name, profile.Role, profile.GroupName, profile.CreatedAt.UTC(), profile.UpdatedAt.UTC())

	return err
}

func (r *profileRepository) UpdateName(userID, name string) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, updated_at = $2
		WHERE user_id = $3
	`, name, time.Now().UTC(), userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) StudentIDs(group string) ([]string, error) {
	ids := []string{}
	query := `SELECT user_id FROM profiles
	          WHERE role = $1 AND ($2 = '' OR group_name = $2)
	          ORDER BY user_id`

	err := r.db.Select(&ids, query, model.RoleStudent, group)
	if err != nil {
		return nil, err
	}

	return ids, nil
}
