package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/domain/performance"
	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

const defaultReportWorkerCount = 4

// ReportService builds read-only admin reports over the same source rows
// the recompute uses. Reports never write; totals shown per match are
// derived on the fly so an admin can audit where a stored total came from.
type ReportService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
	perfRepo   performance.Repository
	playerRepo player.Repository
	workers    int
}

func NewReportService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	perfRepo performance.Repository,
	playerRepo player.Repository,
) *ReportService {
	return &ReportService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		perfRepo:   perfRepo,
		playerRepo: playerRepo,
		workers:    defaultReportWorkerCount,
	}
}

// MatchContribution is one match's share of a team total.
type MatchContribution struct {
	MatchID   int64     `json:"match_id"`
	MatchName string    `json:"match_name"`
	Date      time.Time `json:"date"`
	Points    int       `json:"points"`
}

// TeamPointsReport is the per-match breakdown of one team's total.
type TeamPointsReport struct {
	TeamID      int64               `json:"team_id"`
	TeamName    string              `json:"team_name"`
	UserID      int64               `json:"user_id"`
	TotalPoints int                 `json:"total_points"`
	Matches     []MatchContribution `json:"matches"`
}

// PlayerPointsSummary is a player's accumulated points across all matches.
type PlayerPointsSummary struct {
	PlayerID    int64   `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	House       string  `json:"house"`
	Price       float64 `json:"price"`
	TotalPoints int     `json:"total_points"`
	Matches     int     `json:"matches"`
}

// TeamPointsBreakdown replays every match per team and reports where each
// team's points came from. Teams are processed on a bounded worker pool
// since each breakdown is independent.
func (s *ReportService) TeamPointsBreakdown(ctx context.Context) ([]TeamPointsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.TeamPointsBreakdown")
	defer span.End()

	matches, teams, pointsByMatch, err := s.loadSources(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]TeamPointsReport, len(teams))
	errs := make([]error, len(teams))

	pool, err := ants.NewPool(s.workerCount(len(teams)))
	if err != nil {
		return nil, fmt.Errorf("create report worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, t := range teams {
		idx, t := idx, t
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			reports[idx], errs[idx] = s.buildTeamReport(ctx, t, matches, pointsByMatch)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit report task: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].TotalPoints != reports[j].TotalPoints {
			return reports[i].TotalPoints > reports[j].TotalPoints
		}
		return reports[i].TeamID < reports[j].TeamID
	})
	return reports, nil
}

// PlayerPointsSummaries accumulates every player's recorded points.
func (s *ReportService) PlayerPointsSummaries(ctx context.Context) ([]PlayerPointsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.PlayerPointsSummaries")
	defer span.End()

	matches, _, pointsByMatch, err := s.loadSources(ctx)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players for report: %w", err)
	}

	totals := make(map[int64]int, len(players))
	played := make(map[int64]int, len(players))
	for _, m := range matches {
		for playerID, points := range pointsByMatch[m.ID] {
			totals[playerID] += points
			played[playerID]++
		}
	}

	out := make([]PlayerPointsSummary, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerPointsSummary{
			PlayerID:    p.ID,
			Name:        p.Name,
			Position:    string(p.Position),
			House:       p.House,
			Price:       p.Price,
			TotalPoints: totals[p.ID],
			Matches:     played[p.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

// loadSources fetches matches and teams concurrently, then the per-match
// performance points the breakdowns share.
func (s *ReportService) loadSources(ctx context.Context) ([]match.Match, []team.Team, map[int64]map[int64]int, error) {
	var (
		matches    []match.Match
		teams      []team.Team
		matchesErr error
		teamsErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		matches, matchesErr = s.matchRepo.ListByDate(ctx)
	})
	wg.Go(func() {
		teams, teamsErr = s.teamRepo.List(ctx)
	})
	wg.Wait()

	if matchesErr != nil {
		return nil, nil, nil, fmt.Errorf("list matches for report: %w", matchesErr)
	}
	if teamsErr != nil {
		return nil, nil, nil, fmt.Errorf("list teams for report: %w", teamsErr)
	}

	pointsByMatch := make(map[int64]map[int64]int, len(matches))
	for _, m := range matches {
		performances, err := s.perfRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("list performances for match %d: %w", m.ID, err)
		}
		byPlayer := make(map[int64]int, len(performances))
		for _, p := range performances {
			byPlayer[p.PlayerID] = p.Points
		}
		pointsByMatch[m.ID] = byPlayer
	}

	return matches, teams, pointsByMatch, nil
}

func (s *ReportService) buildTeamReport(
	ctx context.Context,
	t team.Team,
	matches []match.Match,
	pointsByMatch map[int64]map[int64]int,
) (TeamPointsReport, error) {
	memberships, err := s.rosterRepo.ListByTeam(ctx, t.ID)
	if err != nil {
		return TeamPointsReport{}, fmt.Errorf("list roster for team %d: %w", t.ID, err)
	}

	report := TeamPointsReport{
		TeamID:   t.ID,
		TeamName: t.Name,
		UserID:   t.UserID,
		Matches:  make([]MatchContribution, 0, len(matches)),
	}

	for _, m := range matches {
		matchPoints := 0
		for _, member := range roster.ActiveRosterAt(memberships, m.Date) {
			points, played := pointsByMatch[m.ID][member.PlayerID]
			if !played {
				continue
			}
			if member.IsCaptain {
				points *= 2
			}
			matchPoints += points
		}
		report.TotalPoints += matchPoints
		report.Matches = append(report.Matches, MatchContribution{
			MatchID:   m.ID,
			MatchName: m.Name,
			Date:      m.Date,
			Points:    matchPoints,
		})
	}

	return report, nil
}

func (s *ReportService) workerCount(taskCount int) int {
	workers := s.workers
	if workers <= 0 {
		workers = 1
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	return workers
}
