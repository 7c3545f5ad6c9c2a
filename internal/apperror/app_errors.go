package apperror

import "errors"

var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrNoWinner        = errors.New("no winner")
	ErrUnknownPolicy   = errors.New("unknown elimination policy")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrOutcomeNotFound = errors.New("outcome not found")
	ErrCorruptOutcome  = errors.New("stored outcome is corrupt")
)
