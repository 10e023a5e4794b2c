package repository

import "errors"

// Sentinel errors mapped to response codes at the controller boundary.
var (
	// ErrNotFound signals that the referenced header does not exist. Detected
	// outside any transaction, so a missing id never opens one.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict signals that the version supplied with an update no
	// longer matches the stored row (a concurrent update won).
	ErrVersionConflict = errors.New("version conflict")
)
