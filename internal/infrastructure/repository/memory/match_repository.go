package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dsfl/fantasy-league/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		nextID: 1,
		byID:   make(map[int64]match.Match),
	}
}

func (r *MatchRepository) ListByDate(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	return m, ok, nil
}

func (r *MatchRepository) GetByName(_ context.Context, name string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.byID {
		if m.Name == name {
			return m, true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.byID[m.ID] = m

	return m, nil
}

func (r *MatchRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)

	return nil
}
