// Package crypto wraps bcrypt hashing and the password strength rule shared
// by the auth service and the request validator.
package crypto

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	reUpper = regexp.MustCompile(`[A-Z]`)
	reLower = regexp.MustCompile(`[a-z]`)
	reDigit = regexp.MustCompile(`[0-9]`)

	ErrPasswordStrength = errors.New("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one digit")
)

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash.
// A plain mismatch comes back as bcrypt.ErrMismatchedHashAndPassword;
// any other error means the hash itself is corrupt.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsHash reports whether s parses as a bcrypt hash. Write paths use this
// so a stored hash is never hashed a second time.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// IsStrong reports whether password has at least 8 characters including an
// uppercase letter, a lowercase letter and a digit.
func IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	return reUpper.MatchString(password) &&
		reLower.MatchString(password) &&
		reDigit.MatchString(password)
}

// RegisterPasswordValidator makes IsStrong available as the "password" tag.
func RegisterPasswordValidator(v *validator.Validate) error {
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrong(fl.Field().String())
	}); err != nil {
		return ErrPasswordStrength
	}
	return nil
}
