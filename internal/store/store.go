// Package store defines the persistence collaborators for tasks, habit
// sessions, and preferences, plus their GORM/SQLite implementations.
package store

import (
	"errors"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")
