package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source kind or sheet format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingestion Errors.

	// ErrLoadFailed indicates a catalog could not be loaded.
	// Every ingestion failure surfaces to the user as this single error;
	// the previously loaded catalog (if any) is left in place.
	ErrLoadFailed = errors.New("load failed")

	// ErrNoCatalog indicates no catalog has been loaded yet.
	ErrNoCatalog = errors.New("no catalog loaded")

	// ErrTooLarge indicates a source exceeds MaxSheetSize.
	ErrTooLarge = errors.New("source too large")

	// ErrEmptySheet indicates a sheet has no header row.
	ErrEmptySheet = errors.New("sheet has no header row")

	// ErrRateLimited indicates a remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
