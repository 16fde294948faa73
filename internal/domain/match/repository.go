package match

import "context"

// Repository describes match persistence needs from use cases.
// ListByDate orders matches by date ascending with ties broken by id, which
// fixes the replay order used by the points recompute.
type Repository interface {
	ListByDate(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetByName(ctx context.Context, name string) (Match, bool, error)
	Create(ctx context.Context, m Match) (Match, error)
	Delete(ctx context.Context, id int64) error
}
