package news

import "context"

type Repository interface {
	GetLatest(ctx context.Context) (Content, bool, error)
	SetLatest(ctx context.Context, body string) (Content, error)
}
