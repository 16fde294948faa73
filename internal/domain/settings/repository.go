package settings

import "context"

type Repository interface {
	Get(ctx context.Context, key string) (Setting, bool, error)
	Set(ctx context.Context, s Setting) error
}
