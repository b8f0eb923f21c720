package domain

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// emailPattern restricts addresses to an unquoted dot-atom local part and
// LDH domain labels. It is applied on top of the validator "email" rule.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func emailValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizeEmail trims surrounding whitespace.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidateEmail checks an email address for registration.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail.WithDetails("email is required")
	}
	if len(email) > 254 {
		return ErrInvalidEmail.WithDetails("email too long")
	}
	if err := emailValidator().Var(email, "required,email"); err != nil {
		return ErrInvalidEmail.WithDetails(email).WithCause(err)
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail.WithDetails(email)
	}
	return nil
}

// Principal is the user bound to the current session.
type Principal struct {
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	LoggedIn  bool      `json:"logged_in"`
}

// Active reports whether the principal is logged in and unexpired at now.
func (p Principal) Active(now time.Time) bool {
	return p.LoggedIn && now.Before(p.ExpiresAt)
}
