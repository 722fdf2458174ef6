package schedule

import "errors"

// Sentinel kinds for schedule payload errors.
var (
	// ErrParse means the payload was not syntactically valid JSON.
	ErrParse = errors.New("schedule payload is not valid JSON")
	// ErrFormat means the payload parsed but was not an array of records.
	ErrFormat = errors.New("schedule payload is not an array of games")
)
