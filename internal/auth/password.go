// Package auth implements password hashing, JWT sessions and password reset
// tokens.
package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("the password must be at least 8 characters long")
	ErrPasswordNumeric    = errors.New("the password must not consist of digits only")
	ErrPasswordMismatch   = errors.New("the passwords do not match")
	ErrInvalidCredentials = errors.New("the email address or password is not correct")
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// ValidatePassword checks that a password is acceptable for an account.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return ErrPasswordNumeric
	}

	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its hash. It returns
// ErrInvalidCredentials when they do not match.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
