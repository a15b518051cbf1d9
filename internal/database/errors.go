package database

import "errors"

// DateLayout is the format of calendar-day columns.
const DateLayout = "2006-01-02"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrStaleWrite is returned when a row changed since it was read.
	ErrStaleWrite = errors.New("database: row was modified concurrently")
)
