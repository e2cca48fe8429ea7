package model

import "time"

type Role string

const (
	RoleStudent  Role = "student"
	RoleTeacher  Role = "teacher"
	RoleDirector Role = "director"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleDirector:
		return true
	}
	return false
}

// IsStaff reports whether the role may read aggregate dashboards.
func (r Role) IsStaff() bool {
	return r == RoleTeacher || r == RoleDirector
}

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Role      Role      `db:"role" json:"role"`
	GroupName string    `db:"group_name" json:"group_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
