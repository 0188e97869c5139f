package dateutil

import (
	"math"
	"time"
)

// DaysPerYear is the day-count basis used to convert simulated days to months.
const DaysPerYear = 365

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// StartOfDay truncates a time to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of calendar days from fromDate to toDate.
// The result is negative when toDate is earlier.
func DaysUntil(fromDate, toDate time.Time) int {
	from := StartOfDay(fromDate)
	to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 0, 0, 0, 0, from.Location())
	// Round to absorb DST shifts in non-UTC locations.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// MonthsFromDays converts simulated days to whole months, rounding up
func MonthsFromDays(days int) int {
	if days <= 0 {
		return 0
	}
	return (days*12 + DaysPerYear - 1) / DaysPerYear
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}
