package domain

import "errors"

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidTable  = errors.New("invalid table")
	ErrNoResponses   = errors.New("no responses")
)
