// Package dates implements the calendar arithmetic used by the pension rules.
// All dates are "YYYY-MM-DD" strings on the wire and UTC midnights in memory.
package dates

import "time"

const (
	Layout = "2006-01-02"

	// DaysPerYear converts elapsed days into years of service.
	DaysPerYear = 365.25

	secondsPerDay = 24 * 60 * 60
)

// Parse parses "YYYY-MM-DD" without going through time.Parse layout handling.
// It rejects dates that do not exist in the calendar, such as 2023-02-30.
func Parse(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the calendar date of now in UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end, negative
// when end precedes start. Both are expected at UTC midnight. Unix seconds
// are used because time.Duration saturates after about 292 years.
func DaysBetween(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / secondsPerDay)
}

// YearsOfService is the elapsed days from start to end divided by 365.25,
// clamped at zero.
func YearsOfService(start, end time.Time) float64 {
	days := DaysBetween(start, end)
	if days <= 0 {
		return 0
	}
	return float64(days) / DaysPerYear
}

// AgeAt returns the completed years between birth and at: the calendar-year
// difference, less one if the birthday has not yet been reached in at's year.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
