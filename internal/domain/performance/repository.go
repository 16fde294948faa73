package performance

import "context"

// Repository describes performance persistence needs from use cases.
type Repository interface {
	GetByPlayerMatch(ctx context.Context, playerID, matchID int64) (Performance, bool, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Performance, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Performance, error)
	Upsert(ctx context.Context, p Performance) (Performance, error)
	DeleteByMatch(ctx context.Context, matchID int64) error
	DeleteByPlayer(ctx context.Context, playerID int64) error
	DeleteAll(ctx context.Context) error
}
