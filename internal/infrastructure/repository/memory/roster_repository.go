package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/league"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
)

type membershipKey struct {
	teamID   int64
	playerID int64
}

type RosterRepository struct {
	mu          sync.RWMutex
	nextID      int64
	memberships map[membershipKey]roster.Membership
	history     []roster.HistoryEntry
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		nextID:      1,
		memberships: make(map[membershipKey]roster.Membership),
	}
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID int64) ([]roster.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Membership, 0)
	for key, m := range r.memberships {
		if key.teamID == teamID {
			out = append(out, cloneMembership(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *RosterRepository) ListActiveByTeam(ctx context.Context, teamID int64) ([]roster.Membership, error) {
	all, err := r.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Membership, 0, len(all))
	for _, m := range all {
		if m.RemovedAt == nil {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *RosterRepository) Get(_ context.Context, teamID, playerID int64) (roster.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[membershipKey{teamID: teamID, playerID: playerID}]
	if !ok {
		return roster.Membership{}, false, nil
	}

	return cloneMembership(m), true, nil
}

func (r *RosterRepository) Insert(_ context.Context, m roster.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{teamID: m.TeamID, playerID: m.PlayerID}
	if _, exists := r.memberships[key]; exists {
		return fmt.Errorf("%w: membership team=%d player=%d already exists", league.ErrConflict, m.TeamID, m.PlayerID)
	}
	r.memberships[key] = cloneMembership(m)

	return nil
}

func (r *RosterRepository) Reopen(_ context.Context, teamID, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{teamID: teamID, playerID: playerID}
	m, ok := r.memberships[key]
	if !ok {
		return nil
	}
	m.RemovedAt = nil
	r.memberships[key] = m

	return nil
}

func (r *RosterRepository) Close(_ context.Context, teamID, playerID int64, removedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{teamID: teamID, playerID: playerID}
	m, ok := r.memberships[key]
	if !ok || m.RemovedAt != nil {
		return nil
	}
	at := removedAt
	m.RemovedAt = &at
	r.memberships[key] = m

	return nil
}

func (r *RosterRepository) DeleteByPlayer(_ context.Context, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.memberships {
		if key.playerID == playerID {
			delete(r.memberships, key)
		}
	}

	return nil
}

func (r *RosterRepository) AppendHistory(_ context.Context, e roster.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	if e.MatchID != nil {
		matchID := *e.MatchID
		e.MatchID = &matchID
	}
	r.history = append(r.history, e)

	return nil
}

func (r *RosterRepository) ListHistoryByTeam(_ context.Context, teamID int64) ([]roster.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.HistoryEntry, 0)
	for _, e := range r.history {
		if e.TeamID == teamID {
			out = append(out, e)
		}
	}

	return out, nil
}

func cloneMembership(m roster.Membership) roster.Membership {
	if m.RemovedAt != nil {
		at := *m.RemovedAt
		m.RemovedAt = &at
	}
	return m
}
