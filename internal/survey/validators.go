package survey

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func IsValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate accepts YYYY-MM-DD naming a real calendar day.
func ParseDate(s string) (time.Time, bool) {
	if !dateRe.MatchString(s) {
		return time.Time{}, false
	}

	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return parsed, true
}

func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsPositiveInteger accepts values that fit the 32-bit integer columns they are stored in.
func IsPositiveInteger(s string) bool {
	n, err := strconv.ParseInt(s, 10, 32)
	return err == nil && n > 0
}

func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
