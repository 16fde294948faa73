package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/memory"
)

func newTeamFixture(t *testing.T) (*TeamService, *memory.TeamRepository, *memory.RosterRepository) {
	t.Helper()

	teamRepo := memory.NewTeamRepository()
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: 1, Name: "Viktor Krum", Position: player.PositionAttacker, Price: 12.5},
		{ID: 2, Name: "Oliver Wood", Position: player.PositionGoalkeeper, Price: 8.0},
	})
	rosterRepo := memory.NewRosterRepository()

	return NewTeamService(teamRepo, playerRepo, rosterRepo), teamRepo, rosterRepo
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := t.Context()
	service, _, _ := newTeamFixture(t)

	created, err := service.CreateTeam(ctx, 1, "Alpha", "4-4-2")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID == 0 || created.UserID != 1 || created.Formation != "4-4-2" {
		t.Fatalf("unexpected created team: %+v", created)
	}

	// One team per user.
	if _, err := service.CreateTeam(ctx, 1, "Alpha Reborn", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second team, got %v", err)
	}

	if _, err := service.CreateTeam(ctx, 2, "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on empty name, got %v", err)
	}
}

func TestTeamService_GetTeamForUser(t *testing.T) {
	ctx := t.Context()
	service, _, rosterRepo := newTeamFixture(t)

	if _, err := service.GetTeamForUser(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user without team, got %v", err)
	}

	created, err := service.CreateTeam(ctx, 1, "Alpha", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	joined := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	left := joined.Add(24 * time.Hour)
	if err := rosterRepo.Insert(ctx, roster.Membership{TeamID: created.ID, PlayerID: 1, IsCaptain: true, AddedAt: joined}); err != nil {
		t.Fatalf("insert membership: %v", err)
	}
	// Removed members do not show in the active roster view.
	if err := rosterRepo.Insert(ctx, roster.Membership{TeamID: created.ID, PlayerID: 2, AddedAt: joined, RemovedAt: &left}); err != nil {
		t.Fatalf("insert closed membership: %v", err)
	}

	view, err := service.GetTeamForUser(ctx, 1)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if view.Team.ID != created.ID {
		t.Fatalf("unexpected team in view: got=%d want=%d", view.Team.ID, created.ID)
	}
	if len(view.Roster) != 1 {
		t.Fatalf("unexpected roster size: got=%d want=1", len(view.Roster))
	}
	if view.Roster[0].Player.ID != 1 || !view.Roster[0].IsCaptain {
		t.Fatalf("unexpected roster entry: %+v", view.Roster[0])
	}
	if view.History != nil {
		t.Fatalf("manager view must not carry history")
	}
}

func TestTeamService_InspectTeamForUser(t *testing.T) {
	ctx := t.Context()
	service, _, rosterRepo := newTeamFixture(t)

	created, err := service.CreateTeam(ctx, 1, "Alpha", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	changedAt := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if err := rosterRepo.AppendHistory(ctx, roster.HistoryEntry{
		TeamID:    created.ID,
		PlayerID:  1,
		Action:    roster.ActionAdd,
		ChangedAt: changedAt,
	}); err != nil {
		t.Fatalf("append history: %v", err)
	}

	view, err := service.InspectTeamForUser(ctx, 1)
	if err != nil {
		t.Fatalf("inspect team: %v", err)
	}
	if len(view.History) != 1 || view.History[0].Action != roster.ActionAdd {
		t.Fatalf("unexpected history in admin view: %+v", view.History)
	}

	if _, err := service.InspectTeamForUser(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
