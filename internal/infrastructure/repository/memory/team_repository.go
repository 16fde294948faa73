package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dsfl/fantasy-league/internal/domain/league"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		nextID: 1,
		byID:   make(map[int64]team.Team),
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	return t, ok, nil
}

func (r *TeamRepository) GetByUserID(_ context.Context, userID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byID {
		if t.UserID == userID {
			return t, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.UserID == t.UserID {
			return team.Team{}, fmt.Errorf("%w: user %d already has a team", league.ErrConflict, t.UserID)
		}
	}

	t.ID = r.nextID
	r.nextID++
	r.byID[t.ID] = t

	return t, nil
}

func (r *TeamRepository) ReplaceTotalPoints(_ context.Context, totals map[int64]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for teamID, points := range totals {
		t, ok := r.byID[teamID]
		if !ok {
			continue
		}
		t.TotalPoints = points
		r.byID[teamID] = t
	}

	return nil
}
