package usecase

import (
	"testing"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/domain/performance"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/memory"
)

func TestPointsService_RecomputeAllTeamPoints(t *testing.T) {
	ctx := t.Context()

	matchRepo := memory.NewMatchRepository()
	teamRepo := memory.NewTeamRepository()
	rosterRepo := memory.NewRosterRepository()
	perfRepo := memory.NewPerformanceRepository()

	service := NewPointsService(matchRepo, teamRepo, rosterRepo, perfRepo)

	teamA, err := teamRepo.Create(ctx, team.Team{UserID: 1, Name: "Alpha"})
	if err != nil {
		t.Fatalf("create team A: %v", err)
	}
	teamB, err := teamRepo.Create(ctx, team.Team{UserID: 2, Name: "Beta"})
	if err != nil {
		t.Fatalf("create team B: %v", err)
	}

	firstKickoff := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	secondKickoff := time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC)
	m1, err := matchRepo.Create(ctx, matchFixture("Gameweek 1", firstKickoff))
	if err != nil {
		t.Fatalf("create match 1: %v", err)
	}
	m2, err := matchRepo.Create(ctx, matchFixture("Gameweek 2", secondKickoff))
	if err != nil {
		t.Fatalf("create match 2: %v", err)
	}

	joined := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	memberships := []roster.Membership{
		{TeamID: teamA.ID, PlayerID: 1, IsCaptain: true, AddedAt: joined},
		{TeamID: teamA.ID, PlayerID: 2, AddedAt: joined},
		// Removed exactly at the second kickoff: excluded from that match.
		{TeamID: teamA.ID, PlayerID: 3, AddedAt: joined, RemovedAt: &secondKickoff},
		// Added exactly at the second kickoff: included in that match.
		{TeamID: teamA.ID, PlayerID: 4, AddedAt: secondKickoff},
		{TeamID: teamB.ID, PlayerID: 2, AddedAt: joined},
	}
	for _, m := range memberships {
		if err := rosterRepo.Insert(ctx, m); err != nil {
			t.Fatalf("insert membership team=%d player=%d: %v", m.TeamID, m.PlayerID, err)
		}
	}

	rows := []performance.Performance{
		{PlayerID: 1, MatchID: m1.ID, Points: 6},
		{PlayerID: 2, MatchID: m1.ID, Points: 4},
		{PlayerID: 3, MatchID: m1.ID, Points: 3},
		// Not on any roster: must contribute nothing.
		{PlayerID: 9, MatchID: m1.ID, Points: 50},
		{PlayerID: 1, MatchID: m2.ID, Points: 5},
		{PlayerID: 3, MatchID: m2.ID, Points: 7},
		{PlayerID: 4, MatchID: m2.ID, Points: 2},
	}
	for _, row := range rows {
		if _, err := perfRepo.Upsert(ctx, row); err != nil {
			t.Fatalf("upsert performance player=%d: %v", row.PlayerID, err)
		}
	}

	totals, err := service.RecomputeAllTeamPoints(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	// Team A: match 1 = 6*2 + 4 + 3 = 19; match 2 = 5*2 + 2 = 12.
	if got := totals[teamA.ID]; got != 31 {
		t.Fatalf("unexpected team A total: got=%d want=31", got)
	}
	// Team B shares player 2 and only scores in match 1.
	if got := totals[teamB.ID]; got != 4 {
		t.Fatalf("unexpected team B total: got=%d want=4", got)
	}

	stored, exists, err := teamRepo.GetByID(ctx, teamA.ID)
	if err != nil || !exists {
		t.Fatalf("get team A: exists=%v err=%v", exists, err)
	}
	if stored.TotalPoints != 31 {
		t.Fatalf("stored team A total not persisted: got=%d want=31", stored.TotalPoints)
	}
}

func TestPointsService_RecomputeAllTeamPoints_Idempotent(t *testing.T) {
	ctx := t.Context()

	matchRepo := memory.NewMatchRepository()
	teamRepo := memory.NewTeamRepository()
	rosterRepo := memory.NewRosterRepository()
	perfRepo := memory.NewPerformanceRepository()

	service := NewPointsService(matchRepo, teamRepo, rosterRepo, perfRepo)

	created, err := teamRepo.Create(ctx, team.Team{UserID: 1, Name: "Alpha"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	m, err := matchRepo.Create(ctx, matchFixture("Gameweek 1", time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := rosterRepo.Insert(ctx, roster.Membership{
		TeamID:   created.ID,
		PlayerID: 1,
		AddedAt:  time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("insert membership: %v", err)
	}
	if _, err := perfRepo.Upsert(ctx, performance.Performance{PlayerID: 1, MatchID: m.ID, Points: 8}); err != nil {
		t.Fatalf("upsert performance: %v", err)
	}

	first, err := service.RecomputeAllTeamPoints(ctx)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := service.RecomputeAllTeamPoints(ctx)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}

	if first[created.ID] != 8 || second[created.ID] != 8 {
		t.Fatalf("recompute not idempotent: first=%d second=%d want=8", first[created.ID], second[created.ID])
	}
}

func TestPointsService_RecomputeAllTeamPoints_EmptyRoster(t *testing.T) {
	ctx := t.Context()

	teamRepo := memory.NewTeamRepository()
	service := NewPointsService(memory.NewMatchRepository(), teamRepo, memory.NewRosterRepository(), memory.NewPerformanceRepository())

	created, err := teamRepo.Create(ctx, team.Team{UserID: 7, Name: "Hollow"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	totals, err := service.RecomputeAllTeamPoints(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got, ok := totals[created.ID]; !ok || got != 0 {
		t.Fatalf("empty roster total: got=%d ok=%v want=0", got, ok)
	}
}

func matchFixture(name string, date time.Time) match.Match {
	return match.Match{Name: name, Date: date}
}
