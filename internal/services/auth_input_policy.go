package services

import (
	"errors"
	"regexp"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

var emailFormatRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)

// NormalizeEmail lower-cases and trims without judging the format.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidEmailFormat accepts local@domain.tld with a 2-4 letter TLD.
func IsValidEmailFormat(email string) bool {
	return emailFormatRegex.MatchString(email)
}

// NormalizeAuthEmail returns "" for anything that is not a well-formed address.
func NormalizeAuthEmail(raw string) string {
	email := NormalizeEmail(raw)
	if !IsValidEmailFormat(email) {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}
