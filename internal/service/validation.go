package service

import (
	"fmt"
	"time"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

// parseSlotDate parses a YYYY-MM-DD wire date.
func parseSlotDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return parsed, nil
}

// validateHourWindow enforces the bookable window: slots start no earlier
// than 07:00 and the exclusive end bound is 20:00.
func validateHourWindow(startHour, endHour int) error {
	if startHour < models.MinHour || startHour >= endHour || endHour > models.MaxEndHour {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("time range must be between %02d:00 and %02d:00 with end after start", models.MinHour, models.MaxEndHour))
	}
	return nil
}

// isWeekday reports whether the date falls on Monday through Friday.
func isWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// alignToWeekday returns the next occurrence of target on or after start,
// advancing at most six days and never moving backward.
func alignToWeekday(start time.Time, target time.Weekday) time.Time {
	daysAhead := (int(target) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, daysAhead)
}
