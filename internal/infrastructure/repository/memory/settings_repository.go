package memory

import (
	"context"
	"sync"

	"github.com/dsfl/fantasy-league/internal/domain/settings"
)

type SettingsRepository struct {
	mu    sync.RWMutex
	byKey map[string]settings.Setting
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{
		byKey: make(map[string]settings.Setting),
	}
}

func (r *SettingsRepository) Get(_ context.Context, key string) (settings.Setting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byKey[key]
	return s, ok, nil
}

func (r *SettingsRepository) Set(_ context.Context, s settings.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[s.Key] = s

	return nil
}
