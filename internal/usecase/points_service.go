package usecase

import (
	"context"
	"fmt"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/domain/performance"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

// PointsService owns team total points. Totals are a materialized view over
// performances and roster intervals: every scoring-relevant mutation triggers
// a full recompute here, and nothing else may write them.
type PointsService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
	perfRepo   performance.Repository
}

func NewPointsService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	perfRepo performance.Repository,
) *PointsService {
	return &PointsService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		perfRepo:   perfRepo,
	}
}

// RecomputeAllTeamPoints replays every match in chronological order and
// rebuilds each team's total from scratch. For each match only players whose
// membership interval covers the match date count, captains count double,
// and players without a performance row contribute nothing. All totals are
// persisted in one transaction; a failed commit leaves the previous totals
// untouched.
//
// Running this twice with no intervening writes yields identical totals.
func (s *PointsService) RecomputeAllTeamPoints(ctx context.Context) (map[int64]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.RecomputeAllTeamPoints")
	defer span.End()

	matches, err := s.matchRepo.ListByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches for recompute: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams for recompute: %w", err)
	}

	totals := make(map[int64]int, len(teams))
	membershipsByTeam := make(map[int64][]roster.Membership, len(teams))
	for _, t := range teams {
		memberships, err := s.rosterRepo.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list roster for team %d: %w", t.ID, err)
		}
		membershipsByTeam[t.ID] = memberships
		totals[t.ID] = 0
	}

	for _, m := range matches {
		performances, err := s.perfRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list performances for match %d: %w", m.ID, err)
		}
		pointsByPlayer := make(map[int64]int, len(performances))
		for _, p := range performances {
			pointsByPlayer[p.PlayerID] = p.Points
		}

		for _, t := range teams {
			for _, member := range roster.ActiveRosterAt(membershipsByTeam[t.ID], m.Date) {
				points, played := pointsByPlayer[member.PlayerID]
				if !played {
					continue
				}
				if member.IsCaptain {
					points *= 2
				}
				totals[t.ID] += points
			}
		}
	}

	if err := s.teamRepo.ReplaceTotalPoints(ctx, totals); err != nil {
		return nil, fmt.Errorf("replace team totals: %w", err)
	}

	return totals, nil
}
