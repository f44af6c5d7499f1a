package service

import "errors"

// Task errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrParentTaskNotFound = errors.New("parent task not found")
	ErrNotHabitTask       = errors.New("task is not a habit")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidOperation   = errors.New("invalid bulk operation")
)

// Preference errors
var (
	ErrPreferenceNotFound = errors.New("preference not found")
)
