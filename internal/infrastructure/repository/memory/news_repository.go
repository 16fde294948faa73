package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/news"
)

type NewsRepository struct {
	mu      sync.RWMutex
	content *news.Content
	now     func() time.Time
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{now: time.Now}
}

func (r *NewsRepository) GetLatest(_ context.Context) (news.Content, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.content == nil {
		return news.Content{}, false, nil
	}

	return *r.content, true, nil
}

func (r *NewsRepository) SetLatest(_ context.Context, body string) (news.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := news.Content{ID: 1, Body: body, UpdatedAt: r.now().UTC()}
	if r.content != nil {
		updated.ID = r.content.ID
	}
	r.content = &updated

	return updated, nil
}
