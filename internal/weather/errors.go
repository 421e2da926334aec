package weather

import "errors"

var (
	// ErrNoObservations is returned by queries that need at least one recorded day.
	ErrNoObservations = errors.New("no observations recorded")

	// ErrNoMatchingDay is returned by RecordHigh when no year has data for the requested day.
	ErrNoMatchingDay = errors.New("no observation for requested month and day")

	// ErrDivisionByZero is returned when a ratio has no non-trace data to divide by.
	ErrDivisionByZero = errors.New("division by zero")
)
