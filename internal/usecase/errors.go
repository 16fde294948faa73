package usecase

import "github.com/dsfl/fantasy-league/internal/domain/league"

// The taxonomy lives in domain/league so storage adapters can wrap the
// same sentinels without importing this package. Re-exported here because
// services and handlers classify errors at this layer.
var (
	ErrInvalidInput          = league.ErrInvalidInput
	ErrNotFound              = league.ErrNotFound
	ErrConflict              = league.ErrConflict
	ErrUnauthorized          = league.ErrUnauthorized
	ErrForbidden             = league.ErrForbidden
	ErrTeamUpdatesLocked     = league.ErrTeamUpdatesLocked
	ErrDependencyUnavailable = league.ErrDependencyUnavailable
)
