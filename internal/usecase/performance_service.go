package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/domain/performance"
	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/scoring"
)

// PerformanceService records match performances submitted by admins, derives
// their points under the scoring ruleset, and keeps team totals in sync by
// triggering a full recompute after every mutation.
type PerformanceService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	perfRepo   performance.Repository
	points     *PointsService
	ruleset    scoring.Ruleset
	now        func() time.Time
}

func NewPerformanceService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	perfRepo performance.Repository,
	points *PointsService,
	ruleset scoring.Ruleset,
) *PerformanceService {
	return &PerformanceService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		perfRepo:   perfRepo,
		points:     points,
		ruleset:    ruleset,
		now:        time.Now,
	}
}

// PerformanceInput is one player's raw stat line within a submission.
type PerformanceInput struct {
	PlayerID      int64
	Goals         int
	Assists       int
	CleanSheet    bool
	GoalsConceded int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	BonusPoints   int
}

// MatchSubmission carries one admin submission: the match it belongs to
// (resolved by name, created when absent) and the stat lines to record.
type MatchSubmission struct {
	MatchName    string
	MatchDate    *time.Time
	Performances []PerformanceInput
}

type MatchSubmissionResult struct {
	Match        match.Match
	PlayerPoints map[int64]int
	TeamTotals   map[int64]int
}

// SubmitMatchPerformances validates a submission, upserts one performance
// row per (player, match) pair with freshly derived points, and recomputes
// all team totals before returning.
func (s *PerformanceService) SubmitMatchPerformances(ctx context.Context, submission MatchSubmission) (MatchSubmissionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.SubmitMatchPerformances")
	defer span.End()

	if err := validateSubmission(submission); err != nil {
		return MatchSubmissionResult{}, err
	}

	m, err := s.resolveMatch(ctx, submission)
	if err != nil {
		return MatchSubmissionResult{}, err
	}

	playerIDs := make([]int64, 0, len(submission.Performances))
	for _, input := range submission.Performances {
		playerIDs = append(playerIDs, input.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return MatchSubmissionResult{}, fmt.Errorf("load players for submission: %w", err)
	}
	playerByID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	playerPoints := make(map[int64]int, len(submission.Performances))
	for _, input := range submission.Performances {
		p, ok := playerByID[input.PlayerID]
		if !ok {
			return MatchSubmissionResult{}, fmt.Errorf("%w: player %d", ErrNotFound, input.PlayerID)
		}

		perf := performance.Performance{
			PlayerID:      input.PlayerID,
			MatchID:       m.ID,
			Goals:         input.Goals,
			Assists:       input.Assists,
			CleanSheet:    input.CleanSheet,
			GoalsConceded: input.GoalsConceded,
			YellowCards:   input.YellowCards,
			RedCards:      input.RedCards,
			MinutesPlayed: input.MinutesPlayed,
			BonusPoints:   input.BonusPoints,
		}

		points, err := s.ruleset.PlayerPoints(perf, p.Position)
		if err != nil {
			return MatchSubmissionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		perf.Points = points

		if _, err := s.perfRepo.Upsert(ctx, perf); err != nil {
			return MatchSubmissionResult{}, fmt.Errorf("upsert performance player=%d match=%d: %w", input.PlayerID, m.ID, err)
		}
		playerPoints[input.PlayerID] = points
	}

	totals, err := s.points.RecomputeAllTeamPoints(ctx)
	if err != nil {
		return MatchSubmissionResult{}, err
	}

	return MatchSubmissionResult{
		Match:        m,
		PlayerPoints: playerPoints,
		TeamTotals:   totals,
	}, nil
}

// CreateMatch registers a fixture ahead of any performance submission.
// Match names are unique; a duplicate is a conflict.
func (s *PerformanceService) CreateMatch(ctx context.Context, name string, date *time.Time) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.CreateMatch")
	defer span.End()

	if name == "" {
		return match.Match{}, fmt.Errorf("%w: match name is required", ErrInvalidInput)
	}
	if _, exists, err := s.matchRepo.GetByName(ctx, name); err != nil {
		return match.Match{}, fmt.Errorf("check match name: %w", err)
	} else if exists {
		return match.Match{}, fmt.Errorf("%w: match name %q already exists", ErrConflict, name)
	}

	at := s.now().UTC()
	if date != nil {
		at = date.UTC()
	}

	created, err := s.matchRepo.Create(ctx, match.Match{Name: name, Date: at})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return created, nil
}

// ListMatches returns all fixtures in replay order.
func (s *PerformanceService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.ListMatches")
	defer span.End()

	return s.matchRepo.ListByDate(ctx)
}

// DeleteMatch removes a fixture and its performance rows, then recomputes
// totals so every affected team drops by exactly what the match contributed.
func (s *PerformanceService) DeleteMatch(ctx context.Context, matchID int64) (map[int64]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.DeleteMatch")
	defer span.End()

	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	} else if !exists {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	if err := s.perfRepo.DeleteByMatch(ctx, matchID); err != nil {
		return nil, fmt.Errorf("delete performances for match %d: %w", matchID, err)
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return nil, fmt.Errorf("delete match %d: %w", matchID, err)
	}

	return s.points.RecomputeAllTeamPoints(ctx)
}

// ResetPlayerPerformances bulk-deletes one player's performance rows across
// all matches and recomputes, as if the player had never played.
func (s *PerformanceService) ResetPlayerPerformances(ctx context.Context, playerID int64) (map[int64]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.ResetPlayerPerformances")
	defer span.End()

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player %d: %w", playerID, err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}

	if err := s.perfRepo.DeleteByPlayer(ctx, playerID); err != nil {
		return nil, fmt.Errorf("delete performances for player %d: %w", playerID, err)
	}

	return s.points.RecomputeAllTeamPoints(ctx)
}

// ResetAllPoints wipes every performance row and zeroes all team totals.
func (s *PerformanceService) ResetAllPoints(ctx context.Context) (map[int64]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceService.ResetAllPoints")
	defer span.End()

	if err := s.perfRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("delete all performances: %w", err)
	}

	return s.points.RecomputeAllTeamPoints(ctx)
}

func (s *PerformanceService) resolveMatch(ctx context.Context, submission MatchSubmission) (match.Match, error) {
	existing, exists, err := s.matchRepo.GetByName(ctx, submission.MatchName)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by name: %w", err)
	}
	if exists {
		return existing, nil
	}

	at := s.now().UTC()
	if submission.MatchDate != nil {
		at = submission.MatchDate.UTC()
	}

	created, err := s.matchRepo.Create(ctx, match.Match{Name: submission.MatchName, Date: at})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match for submission: %w", err)
	}
	return created, nil
}

func validateSubmission(submission MatchSubmission) error {
	if submission.MatchName == "" {
		return fmt.Errorf("%w: match name is required", ErrInvalidInput)
	}
	if len(submission.Performances) == 0 {
		return fmt.Errorf("%w: at least one performance is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(submission.Performances))
	for _, input := range submission.Performances {
		if input.PlayerID <= 0 {
			return fmt.Errorf("%w: player id is required", ErrInvalidInput)
		}
		if _, dup := seen[input.PlayerID]; dup {
			return fmt.Errorf("%w: duplicate player %d in submission", ErrInvalidInput, input.PlayerID)
		}
		seen[input.PlayerID] = struct{}{}

		for name, v := range map[string]int{
			"goals":          input.Goals,
			"assists":        input.Assists,
			"goals_conceded": input.GoalsConceded,
			"yellow_cards":   input.YellowCards,
			"red_cards":      input.RedCards,
			"minutes_played": input.MinutesPlayed,
			"bonus_points":   input.BonusPoints,
		} {
			if v < 0 {
				return fmt.Errorf("%w: stat %s must not be negative for player %d", ErrInvalidInput, name, input.PlayerID)
			}
		}
	}

	return nil
}
