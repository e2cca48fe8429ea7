package validation

import (
	"strings"
)

const (
	MinPasswordLength = 10
	// bcrypt ignores everything past 72 bytes
	MaxPasswordLength = 72
)

var commonPasswordFragments = []string{
	"password", "contraseña", "123456", "qwerty", "admin",
	"letmein", "colegio", "escuela", "bienestar",
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return invalid("password", "password must be at least %d characters", MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return invalid("password", "password must not exceed %d bytes", MaxPasswordLength)
	}

	lower := strings.ToLower(password)
	for _, fragment := range commonPasswordFragments {
		if strings.Contains(lower, fragment) {
			return invalid("password", "password is too common, please choose a stronger one")
		}
	}

	return nil
}
