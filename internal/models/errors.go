package models

import "errors"

var (
	// ErrInvalidConfig is returned when a goal or catalog definition cannot describe a program.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrOutOfRange is returned when a recorded weight falls outside the configured bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidKey is returned for a weekday or meal slot label unknown to the catalog.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidDate is returned when a date key does not parse as a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrCorruptSnapshot is returned when a persisted snapshot violates store invariants.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
