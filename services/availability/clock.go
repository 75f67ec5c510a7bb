package availability

import (
	"errors"
	"fmt"
)

// DateLayout is the calendar-date wire format used throughout the API.
// ISO dates and zero-padded "HH:MM" clocks both order correctly under plain
// string comparison, which the slot computations rely on.
const DateLayout = "2006-01-02"

// ErrBadClock reports a malformed "HH:MM" value.
var ErrBadClock = errors.New("malformed HH:MM time")

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	h, ok1 := digits2(s[0], s[1])
	m, ok2 := digits2(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes from midnight to a zero-padded "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func digits2(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
