package governance

import "errors"

// Every failure the engine can answer with maps onto one of these, so
// the web layer can pick a status code without string matching.
var (
	ErrNotFound      = errors.New("proposal not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrVotingClosed  = errors.New("voting period has ended")
	ErrAlreadyClosed = errors.New("proposal already closed")
	// ErrInvalidConfig means a band carries a voting method the engine
	// does not know. Should never happen if band settings are validated
	// at write time.
	ErrInvalidConfig = errors.New("unrecognized voting method")
)
