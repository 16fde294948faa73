package team

import "context"

// Repository describes team persistence needs from use cases.
// ReplaceTotalPoints writes every team's total in one transaction; a
// failure must roll back all of them.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByUserID(ctx context.Context, userID int64) (Team, bool, error)
	Create(ctx context.Context, t Team) (Team, error)
	ReplaceTotalPoints(ctx context.Context, totals map[int64]int) error
}
