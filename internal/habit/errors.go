package habit

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned when engine state is read or mutated before
// Initialize has succeeded.
var ErrNotLoaded = errors.New("engine not initialized")

// LoadError reports a failed initial fetch. The engine exposes no partial
// state; callers should surface this as a blocking condition with retry.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load initial data: %s", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError reports input rejected before any remote call was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Reason) }

// RemoteError reports a failed remote mutation. For toggles the engine has
// already rolled back its optimistic change; for everything else no local
// state was touched.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("remote %s: %s", e.Op, e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }
