package validation

import (
	"net/mail"
)

// ValidateEmail checks length and RFC 5322 syntax.
func ValidateEmail(email string) error {
	if email == "" {
		return invalid("email", "email address is required")
	}

	// RFC 5321 caps a forward path at 254 octets
	if len(email) > 254 {
		return invalid("email", "email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "invalid email address format")
	}

	return nil
}
