package clock

import (
	"fmt"
	"time"
)

// MinutesPerDay bounds a Minute value.
const MinutesPerDay = 24 * 60

// Minute is a wall-clock time of day expressed as minutes since midnight.
type Minute int

// ParseError reports a string that is not a strict 24-hour "HH:MM" value.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("clock: cannot parse %q as HH:MM", e.Input)
}

// Parse reads a strict "HH:MM" 24-hour value. Single-digit hours and any
// trailing content are rejected.
func Parse(s string) (Minute, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, &ParseError{Input: s}
	}
	hour, ok := parseTwoDigits(s[0], s[1])
	if !ok || hour > 23 {
		return 0, &ParseError{Input: s}
	}
	min, ok := parseTwoDigits(s[3], s[4])
	if !ok || min > 59 {
		return 0, &ParseError{Input: s}
	}
	return Minute(hour*60 + min), nil
}

func parseTwoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Sub moves m earlier by the given number of minutes, wrapping at midnight.
func (m Minute) Sub(minutes int) Minute {
	v := (int(m) - minutes) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return Minute(v)
}

// On anchors the time of day onto the calendar date of day, in day's location.
func (m Minute) On(day time.Time) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, int(m)/60, int(m)%60, 0, 0, day.Location())
}

// FromTime truncates t to its minute of day.
func FromTime(t time.Time) Minute {
	return Minute(t.Hour()*60 + t.Minute())
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share any minute.
func Overlaps(s1, e1, s2, e2 Minute) bool {
	return s1 < e2 && s2 < e1
}
