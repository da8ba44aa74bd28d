package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("start date must not be after end date")

// DateRange is an inclusive calendar-day window. Time-of-day is not part of
// the model; boundaries are truncated to midnight on construction.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a validated range from two calendar dates
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate rejects inverted windows
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return ErrInvalidDateRange
	}
	return nil
}

// Contains reports whether the date falls inside the window, inclusive on
// both ends
func (r DateRange) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns the inclusive length of the window in days
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Previous returns the immediately preceding window of equal length:
// [start-length, start-1day]
func (r DateRange) Previous() DateRange {
	length := r.Days()
	prevEnd := r.Start.AddDate(0, 0, -1)
	return DateRange{
		Start: prevEnd.AddDate(0, 0, -(length - 1)),
		End:   prevEnd,
	}
}

// String formats the range for logs
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
