package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/scoring"
	"github.com/dsfl/fantasy-league/internal/domain/team"
	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/memory"
)

type performanceFixture struct {
	service *PerformanceService
	matches *memory.MatchRepository
	perfs   *memory.PerformanceRepository
	teams   *memory.TeamRepository
	teamID  int64
	kickoff time.Time
}

func newPerformanceFixture(t *testing.T) performanceFixture {
	t.Helper()
	ctx := t.Context()

	matchRepo := memory.NewMatchRepository()
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: 1, Name: "Viktor Krum", Position: player.PositionAttacker, Price: 12.5},
		{ID: 2, Name: "Oliver Wood", Position: player.PositionGoalkeeper, Price: 8.0},
	})
	perfRepo := memory.NewPerformanceRepository()
	teamRepo := memory.NewTeamRepository()
	rosterRepo := memory.NewRosterRepository()

	created, err := teamRepo.Create(ctx, team.Team{UserID: 1, Name: "Alpha"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	joined := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	for _, playerID := range []int64{1, 2} {
		if err := rosterRepo.Insert(ctx, roster.Membership{TeamID: created.ID, PlayerID: playerID, AddedAt: joined}); err != nil {
			t.Fatalf("insert membership player=%d: %v", playerID, err)
		}
	}

	points := NewPointsService(matchRepo, teamRepo, rosterRepo, perfRepo)
	service := NewPerformanceService(matchRepo, playerRepo, perfRepo, points, scoring.DefaultRuleset())

	return performanceFixture{
		service: service,
		matches: matchRepo,
		perfs:   perfRepo,
		teams:   teamRepo,
		teamID:  created.ID,
		kickoff: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPerformanceService_SubmitMatchPerformances(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	result, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName: "Gameweek 1",
		MatchDate: &fx.kickoff,
		Performances: []PerformanceInput{
			{PlayerID: 1, MinutesPlayed: 90, Goals: 1},
			{PlayerID: 2, MinutesPlayed: 90, CleanSheet: true},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Match.Name != "Gameweek 1" || !result.Match.Date.Equal(fx.kickoff) {
		t.Fatalf("unexpected resolved match: %+v", result.Match)
	}
	if got := result.PlayerPoints[1]; got != 6 {
		t.Fatalf("unexpected attacker points: got=%d want=6", got)
	}
	if got := result.PlayerPoints[2]; got != 6 {
		t.Fatalf("unexpected keeper points: got=%d want=6", got)
	}
	if got := result.TeamTotals[fx.teamID]; got != 12 {
		t.Fatalf("unexpected team total: got=%d want=12", got)
	}

	// Resubmitting the same match name reuses the fixture and replaces the
	// stat lines rather than stacking a second row per player.
	resubmit, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName: "Gameweek 1",
		Performances: []PerformanceInput{
			{PlayerID: 1, MinutesPlayed: 90, Goals: 2},
		},
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmit.Match.ID != result.Match.ID {
		t.Fatalf("resubmission created a new match: got=%d want=%d", resubmit.Match.ID, result.Match.ID)
	}
	if got := resubmit.PlayerPoints[1]; got != 10 {
		t.Fatalf("unexpected resubmitted points: got=%d want=10", got)
	}
	if got := resubmit.TeamTotals[fx.teamID]; got != 16 {
		t.Fatalf("unexpected team total after resubmit: got=%d want=16", got)
	}

	rows, err := fx.perfs.ListByMatch(ctx, result.Match.ID)
	if err != nil {
		t.Fatalf("list performances: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected one row per (player, match) pair: got=%d", len(rows))
	}
}

func TestPerformanceService_SubmitMatchPerformances_Validation(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	tests := []struct {
		name       string
		submission MatchSubmission
		wantErr    error
	}{
		{
			name:       "missing match name",
			submission: MatchSubmission{Performances: []PerformanceInput{{PlayerID: 1, MinutesPlayed: 90}}},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "empty performances",
			submission: MatchSubmission{MatchName: "Gameweek 1"},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "duplicate player",
			submission: MatchSubmission{MatchName: "Gameweek 1", Performances: []PerformanceInput{
				{PlayerID: 1, MinutesPlayed: 90},
				{PlayerID: 1, Goals: 1},
			}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative stat",
			submission: MatchSubmission{MatchName: "Gameweek 1", Performances: []PerformanceInput{
				{PlayerID: 1, Goals: -1},
			}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.SubmitMatchPerformances(ctx, tt.submission)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
		})
	}

	// Validation runs before match resolution, so none of the rejected
	// submissions may leave a fixture behind.
	if matches, err := fx.matches.ListByDate(ctx); err != nil || len(matches) != 0 {
		t.Fatalf("validation failure created matches: n=%d err=%v", len(matches), err)
	}

	// An unknown player fails after resolution; the submission records nothing.
	_, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName:    "Gameweek 1",
		Performances: []PerformanceInput{{PlayerID: 99, MinutesPlayed: 90}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestPerformanceService_SubmitMatchPerformances_UnknownPosition(t *testing.T) {
	ctx := t.Context()

	matchRepo := memory.NewMatchRepository()
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: 1, Name: "Mystery", Position: player.Position("ST"), Price: 5.0},
	})
	perfRepo := memory.NewPerformanceRepository()
	teamRepo := memory.NewTeamRepository()
	points := NewPointsService(matchRepo, teamRepo, memory.NewRosterRepository(), perfRepo)
	service := NewPerformanceService(matchRepo, playerRepo, perfRepo, points, scoring.DefaultRuleset())

	_, err := service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName:    "Gameweek 1",
		Performances: []PerformanceInput{{PlayerID: 1, MinutesPlayed: 90}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}
}

func TestPerformanceService_CreateMatch(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	fallback := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	fx.service.now = func() time.Time { return fallback }

	created, err := fx.service.CreateMatch(ctx, "Gameweek 3", nil)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if !created.Date.Equal(fallback) {
		t.Fatalf("nil date must default to now: got=%s want=%s", created.Date, fallback)
	}

	if _, err := fx.service.CreateMatch(ctx, "Gameweek 3", &fx.kickoff); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate name, got %v", err)
	}
	if _, err := fx.service.CreateMatch(ctx, "", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on empty name, got %v", err)
	}
}

func TestPerformanceService_DeleteMatch(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	result, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName:    "Gameweek 1",
		MatchDate:    &fx.kickoff,
		Performances: []PerformanceInput{{PlayerID: 1, MinutesPlayed: 90, Goals: 1}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TeamTotals[fx.teamID] != 6 {
		t.Fatalf("unexpected total before delete: got=%d want=6", result.TeamTotals[fx.teamID])
	}

	totals, err := fx.service.DeleteMatch(ctx, result.Match.ID)
	if err != nil {
		t.Fatalf("delete match: %v", err)
	}
	if got := totals[fx.teamID]; got != 0 {
		t.Fatalf("team total must drop with the match: got=%d want=0", got)
	}
	if rows, err := fx.perfs.ListByMatch(ctx, result.Match.ID); err != nil || len(rows) != 0 {
		t.Fatalf("performances must be removed with the match: n=%d err=%v", len(rows), err)
	}

	if _, err := fx.service.DeleteMatch(ctx, result.Match.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted match, got %v", err)
	}
}

func TestPerformanceService_ResetPlayerPerformances(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	if _, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName: "Gameweek 1",
		MatchDate: &fx.kickoff,
		Performances: []PerformanceInput{
			{PlayerID: 1, MinutesPlayed: 90, Goals: 1},
			{PlayerID: 2, MinutesPlayed: 90, CleanSheet: true},
		},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	totals, err := fx.service.ResetPlayerPerformances(ctx, 1)
	if err != nil {
		t.Fatalf("reset player: %v", err)
	}
	if got := totals[fx.teamID]; got != 6 {
		t.Fatalf("total must keep the other player's points: got=%d want=6", got)
	}

	if _, err := fx.service.ResetPlayerPerformances(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestPerformanceService_ResetAllPoints(t *testing.T) {
	ctx := t.Context()
	fx := newPerformanceFixture(t)

	if _, err := fx.service.SubmitMatchPerformances(ctx, MatchSubmission{
		MatchName:    "Gameweek 1",
		MatchDate:    &fx.kickoff,
		Performances: []PerformanceInput{{PlayerID: 1, MinutesPlayed: 90, Goals: 2}},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	totals, err := fx.service.ResetAllPoints(ctx)
	if err != nil {
		t.Fatalf("reset all: %v", err)
	}
	if got := totals[fx.teamID]; got != 0 {
		t.Fatalf("unexpected total after reset: got=%d want=0", got)
	}

	stored, exists, err := fx.teams.GetByID(ctx, fx.teamID)
	if err != nil || !exists {
		t.Fatalf("get team: exists=%v err=%v", exists, err)
	}
	if stored.TotalPoints != 0 {
		t.Fatalf("stored total not zeroed: got=%d", stored.TotalPoints)
	}
}
