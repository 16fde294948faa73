package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dsfl/fantasy-league/internal/domain/performance"
)

type performanceKey struct {
	playerID int64
	matchID  int64
}

type PerformanceRepository struct {
	mu     sync.RWMutex
	nextID int64
	byKey  map[performanceKey]performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{
		nextID: 1,
		byKey:  make(map[performanceKey]performance.Performance),
	}
}

func (r *PerformanceRepository) GetByPlayerMatch(_ context.Context, playerID, matchID int64) (performance.Performance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byKey[performanceKey{playerID: playerID, matchID: matchID}]
	return p, ok, nil
}

func (r *PerformanceRepository) ListByMatch(_ context.Context, matchID int64) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0)
	for key, p := range r.byKey {
		if key.matchID == matchID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

func (r *PerformanceRepository) ListByPlayer(_ context.Context, playerID int64) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0)
	for key, p := range r.byKey {
		if key.playerID == playerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })

	return out, nil
}

func (r *PerformanceRepository) Upsert(_ context.Context, p performance.Performance) (performance.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := performanceKey{playerID: p.PlayerID, matchID: p.MatchID}
	if existing, ok := r.byKey[key]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	r.byKey[key] = p

	return p, nil
}

func (r *PerformanceRepository) DeleteByMatch(_ context.Context, matchID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.byKey {
		if key.matchID == matchID {
			delete(r.byKey, key)
		}
	}

	return nil
}

func (r *PerformanceRepository) DeleteByPlayer(_ context.Context, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.byKey {
		if key.playerID == playerID {
			delete(r.byKey, key)
		}
	}

	return nil
}

func (r *PerformanceRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey = make(map[performanceKey]performance.Performance)

	return nil
}
