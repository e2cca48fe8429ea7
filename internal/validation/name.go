package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/bienestar-app/bienestar/internal/model"
)

const MaxNameLength = 100

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return invalid("name", "name is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return invalid("name", "name is too long (max %d characters)", MaxNameLength)
	}

	return nil
}

func ValidateRole(role model.Role) error {
	if !role.Valid() {
		return invalid("role", "role must be one of student, teacher, director")
	}
	return nil
}

// ValidateGroup requires a group for students and teachers; directors see the whole school.
func ValidateGroup(role model.Role, group string) error {
	group = strings.TrimSpace(group)
	if role != model.RoleDirector && group == "" {
		return invalid("group_name", "group is required for %ss", role)
	}
	if utf8.RuneCountInString(group) > MaxNameLength {
		return invalid("group_name", "group is too long (max %d characters)", MaxNameLength)
	}
	return nil
}
