package validation

import (
	"regexp"
	"strconv"
	"time"
)

var (
	loginPattern    = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9][A-Za-zА-Яа-яЁё0-9-_.!@#$%^&*()+=-]{3,20}[A-Za-zА-Яа-яЁё0-9]$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-ZА-Яа-яЁё0-9!@#$%^&*()_+=-]{8,16}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

const (
	BirthDateLayout = "2006-01-02"
	MinGamerAgeDays = 14 * 365
)

func ValidateLogin(login string) bool {
	return loginPattern.MatchString(login)
}

func ValidatePassword(password string) bool {
	return passwordPattern.MatchString(password)
}

func ValidateEmail(email string) bool {
	return len(email) <= 255 && emailPattern.MatchString(email)
}

// OldEnough reports whether someone born on birthDate is at least 14×365 days old at now.
func OldEnough(birthDate, now time.Time) bool {
	return now.Sub(birthDate) >= MinGamerAgeDays*24*time.Hour
}

// ParseID parses a positive decimal identifier taken from a URL path.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
