package dataset

import "errors"

var (
	// ErrDataUnavailable indicates the source file could not be read at all.
	// Distinct from "zero usable rows", which is a valid empty result.
	ErrDataUnavailable = errors.New("dataset unavailable")
)
