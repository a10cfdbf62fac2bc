package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Thai Buddhist era = Gregorian + 543.
const (
	beOffset    = 543
	minBuddhist = 2400
)

// NormalizeAcademicYear returns the Buddhist-era form of a year.
// Values below 2400 are read as Gregorian and converted.
func NormalizeAcademicYear(s string) (string, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y <= 0 || y > 9999 {
		return "", fmt.Errorf("invalid academic year %q", s)
	}
	if y < minBuddhist {
		y += beOffset
	}
	return strconv.Itoa(y), nil
}

// YearWindow is the donation window [Jan 1, next Jan 1) of the academic year,
// taken in loc and returned in UTC.
func YearWindow(academicYear string, loc *time.Location) (time.Time, time.Time, error) {
	be, err := NormalizeAcademicYear(academicYear)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, _ := strconv.Atoi(be)
	ce := y - beOffset
	start := time.Date(ce, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(ce+1, time.January, 1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC(), nil
}

// AcademicYearFor maps a timestamp to the academic year whose window contains it.
func AcademicYearFor(t time.Time, loc *time.Location) string {
	return strconv.Itoa(t.In(loc).Year() + beOffset)
}
