package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/settings"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

// RosterService manages team roster membership transitions. Every add and
// remove keeps exactly one membership row per (team, player) pair and
// appends an audit history entry, so a pair can never be active twice
// at the same instant.
type RosterService struct {
	teamRepo     team.Repository
	playerRepo   player.Repository
	rosterRepo   roster.Repository
	settingsRepo settings.Repository
	now          func() time.Time
}

func NewRosterService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	settingsRepo settings.Repository,
) *RosterService {
	return &RosterService{
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		rosterRepo:   rosterRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// AddPlayer puts a player on the caller's team roster. Adding an
// already-active pair is a no-op returning the existing membership, with no
// history entry. Re-adding a previously removed pair reopens the same row by
// clearing its removal date rather than inserting a duplicate.
func (s *RosterService) AddPlayer(ctx context.Context, userID, playerID int64, isCaptain bool, matchID *int64) (roster.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	if err := s.checkUpdatesUnlocked(ctx); err != nil {
		return roster.Membership{}, err
	}

	t, err := s.teamForUser(ctx, userID)
	if err != nil {
		return roster.Membership{}, err
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return roster.Membership{}, fmt.Errorf("get player %d: %w", playerID, err)
	} else if !exists {
		return roster.Membership{}, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}

	existing, exists, err := s.rosterRepo.Get(ctx, t.ID, playerID)
	if err != nil {
		return roster.Membership{}, fmt.Errorf("get membership team=%d player=%d: %w", t.ID, playerID, err)
	}

	now := s.now().UTC()
	var membership roster.Membership
	switch {
	case exists && existing.RemovedAt == nil:
		// Already active: idempotent no-op.
		return existing, nil
	case exists:
		if err := s.rosterRepo.Reopen(ctx, t.ID, playerID); err != nil {
			return roster.Membership{}, fmt.Errorf("reopen membership team=%d player=%d: %w", t.ID, playerID, err)
		}
		existing.RemovedAt = nil
		membership = existing
	default:
		membership = roster.Membership{
			TeamID:    t.ID,
			PlayerID:  playerID,
			IsCaptain: isCaptain,
			AddedAt:   now,
		}
		if err := s.rosterRepo.Insert(ctx, membership); err != nil {
			return roster.Membership{}, fmt.Errorf("insert membership team=%d player=%d: %w", t.ID, playerID, err)
		}
	}

	if err := s.rosterRepo.AppendHistory(ctx, roster.HistoryEntry{
		TeamID:    t.ID,
		PlayerID:  playerID,
		Action:    roster.ActionAdd,
		ChangedAt: now,
		MatchID:   matchID,
	}); err != nil {
		return roster.Membership{}, fmt.Errorf("append add history team=%d player=%d: %w", t.ID, playerID, err)
	}

	return membership, nil
}

// RemovePlayer closes the active membership by stamping its removal date.
// The interval is half-open: a match at exactly the removal instant no
// longer counts the player.
func (s *RosterService) RemovePlayer(ctx context.Context, userID, playerID int64, matchID *int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayer")
	defer span.End()

	if err := s.checkUpdatesUnlocked(ctx); err != nil {
		return err
	}

	t, err := s.teamForUser(ctx, userID)
	if err != nil {
		return err
	}

	membership, exists, err := s.rosterRepo.Get(ctx, t.ID, playerID)
	if err != nil {
		return fmt.Errorf("get membership team=%d player=%d: %w", t.ID, playerID, err)
	}
	if !exists || membership.RemovedAt != nil {
		return fmt.Errorf("%w: player %d is not on the roster", ErrNotFound, playerID)
	}

	now := s.now().UTC()
	if err := s.rosterRepo.Close(ctx, t.ID, playerID, now); err != nil {
		return fmt.Errorf("close membership team=%d player=%d: %w", t.ID, playerID, err)
	}

	if err := s.rosterRepo.AppendHistory(ctx, roster.HistoryEntry{
		TeamID:    t.ID,
		PlayerID:  playerID,
		Action:    roster.ActionRemove,
		ChangedAt: now,
		MatchID:   matchID,
	}); err != nil {
		return fmt.Errorf("append remove history team=%d player=%d: %w", t.ID, playerID, err)
	}

	return nil
}

// ListHistory returns the append-only roster audit trail for the caller's team.
func (s *RosterService) ListHistory(ctx context.Context, userID int64) ([]roster.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListHistory")
	defer span.End()

	t, err := s.teamForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.rosterRepo.ListHistoryByTeam(ctx, t.ID)
}

func (s *RosterService) teamForUser(ctx context.Context, userID int64) (team.Team, error) {
	t, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team for user %d: %w", userID, err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: user %d has no team", ErrNotFound, userID)
	}
	return t, nil
}

func (s *RosterService) checkUpdatesUnlocked(ctx context.Context) error {
	setting, exists, err := s.settingsRepo.Get(ctx, settings.KeyTeamUpdatesLocked)
	if err != nil {
		return fmt.Errorf("get team updates lock: %w", err)
	}
	if exists && setting.Enabled() {
		return ErrTeamUpdatesLocked
	}
	return nil
}
