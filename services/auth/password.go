package auth

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const minPasswordLength = 12

var (
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters long")
	ErrPasswordNoUpper   = errors.New("password must contain an uppercase letter")
	ErrPasswordNoLower   = errors.New("password must contain a lowercase letter")
	ErrPasswordNoDigit   = errors.New("password must contain a digit")
	ErrPasswordNoSpecial = errors.New("password must contain a special character")
	ErrPasswordHasDOB    = errors.New("password must not contain your date of birth")
)

// ValidatePassword enforces the account password policy. dateOfBirth is the
// patient's birth date in "2006-01-02" form and may be empty for roles that
// have none; when present the password must not embed it in any common
// digit ordering.
func ValidatePassword(password, dateOfBirth string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	switch {
	case !upper:
		return ErrPasswordNoUpper
	case !lower:
		return ErrPasswordNoLower
	case !digit:
		return ErrPasswordNoDigit
	case !special:
		return ErrPasswordNoSpecial
	}

	if dateOfBirth != "" && containsDOB(password, dateOfBirth) {
		return ErrPasswordHasDOB
	}
	return nil
}

// containsDOB checks the password against the birth date rendered in the
// orderings people actually type: ISO, and the digit-only year-first,
// day-first and month-first forms.
func containsDOB(password, dateOfBirth string) bool {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return false
	}
	variants := []string{
		dob.Format("2006-01-02"),
		dob.Format("20060102"),
		dob.Format("02012006"),
		dob.Format("01022006"),
	}
	for _, v := range variants {
		if strings.Contains(password, v) {
			return true
		}
	}
	return false
}
