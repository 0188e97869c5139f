package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{
			name:        "Same month and day",
			birthDate:   time.Date(1975, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2035, 2, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
		},
		{
			name:        "Day before birthday",
			birthDate:   time.Date(1975, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2035, 2, 24, 0, 0, 0, 0, time.UTC),
			expectedAge: 59,
		},
		{
			name:        "Month after birthday",
			birthDate:   time.Date(1975, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2035, 3, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
		},
		{
			name:        "Leap year birth, non-leap year check",
			birthDate:   time.Date(1984, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			expectedAge: 40,
		},
		{
			name:        "Leap year birth, leap year check",
			birthDate:   time.Date(1984, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedAge: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		sydney = time.UTC
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"Same day", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), 0},
		{"Next day ignores clock time", time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC), 1},
		{"Non-leap year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 365},
		{"Leap year", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 366},
		{"Backwards", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), -9},
		{"Across daylight saving", time.Date(2025, 3, 1, 0, 0, 0, 0, sydney), time.Date(2025, 5, 1, 0, 0, 0, 0, sydney), 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.from, tt.to))
		})
	}
}

func TestMonthsFromDays(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{30, 1},
		{31, 2},
		{365, 12},
		{366, 13},
		{730, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthsFromDays(tt.days), "days=%d", tt.days)
	}
}

// TestDateArithmetic tests date arithmetic functions
func TestDateArithmetic(t *testing.T) {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2085, 6, 15, 0, 0, 0, 0, time.UTC), AddYears(base, 60))
	// A leap-day birthday reaches its anniversary on 1 March.
	assert.Equal(t, time.Date(2029, 3, 1, 0, 0, 0, 0, time.UTC), AddYears(time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), 1))
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), StartOfDay(base.Add(17*time.Hour)))
}
