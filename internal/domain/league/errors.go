// Package league holds the error taxonomy shared by the service layer and
// the storage and account adapters. Callers classify failures with
// errors.Is against these sentinels; adapters wrap them with context via
// fmt.Errorf and %w.
package league

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrTeamUpdatesLocked     = errors.New("team updates are locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
