package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotLoaded = errors.New("schedule not loaded")
)
