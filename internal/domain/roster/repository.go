package roster

import (
	"context"
	"time"
)

// Repository describes roster-membership persistence needs from use cases.
//
// Insert creates a brand-new membership row. Reopen clears RemovedAt on an
// existing closed row, restoring activity without duplicating the pair.
// Close stamps RemovedAt on the active row. Each caller is responsible for
// appending the matching history entry.
type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Membership, error)
	ListActiveByTeam(ctx context.Context, teamID int64) ([]Membership, error)
	Get(ctx context.Context, teamID, playerID int64) (Membership, bool, error)
	Insert(ctx context.Context, m Membership) error
	Reopen(ctx context.Context, teamID, playerID int64) error
	Close(ctx context.Context, teamID, playerID int64, removedAt time.Time) error
	DeleteByPlayer(ctx context.Context, playerID int64) error

	AppendHistory(ctx context.Context, e HistoryEntry) error
	ListHistoryByTeam(ctx context.Context, teamID int64) ([]HistoryEntry, error)
}
