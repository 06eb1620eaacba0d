package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that the requested key is not stored
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrUnknownDriver indicates an unsupported storage.driver value
	ErrUnknownDriver = errors.New("unknown storage driver")
)
