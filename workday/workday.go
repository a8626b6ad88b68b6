package workday

import (
	"fmt"
	"math"
	"time"
)

// DateFormat is the canonical work-date layout stored in the attendance table.
const DateFormat = "2006-01-02"

// Resolve maps a wall-clock timestamp to its work-day bucket. Events before
// startHour belong to the previous calendar date, so a site with startHour 4
// logs a 01:00 check-in against yesterday. Total for any startHour in [0,23].
func Resolve(t time.Time, startHour int) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Hour() < startHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// ResolveDate is Resolve formatted as a stored work-date string.
func ResolveDate(t time.Time, startHour int) string {
	return Resolve(t, startHour).Format(DateFormat)
}

// ParseBirthDate accepts YYYY-MM-DD or YYYYMMDD.
func ParseBirthDate(s string) (time.Time, error) {
	if len(s) == 8 {
		s = fmt.Sprintf("%s-%s-%s", s[0:4], s[4:6], s[6:8])
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q: %w", s, err)
	}
	return t, nil
}

// Age is the full years lived as of ref. Using the work-date as ref keeps the
// result stable no matter when the record is actually processed.
func Age(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

func IsSenior(birth, ref time.Time, threshold int) bool {
	return Age(birth, ref) >= threshold
}

// RoundHours converts a worked duration to fractional hours with one decimal,
// the display precision used everywhere in attendance reporting.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*10) / 10
}

// Round1 re-rounds an accumulated hour total to one decimal.
func Round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}

// MonthBounds returns the first and last work-date strings of a calendar
// month, inclusive on both ends.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateFormat), last.Format(DateFormat)
}
