package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/league"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

// Uniqueness violations must wrap the shared domain sentinels so services
// can classify them with errors.Is without this package depending on the
// service layer.

func TestRosterRepository_Insert_DuplicateMembershipIsConflict(t *testing.T) {
	repo := NewRosterRepository()
	ctx := context.Background()

	m := roster.Membership{
		TeamID:   1,
		PlayerID: 7,
		AddedAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Insert(ctx, m); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := repo.Insert(ctx, m)
	if !errors.Is(err, league.ErrConflict) {
		t.Fatalf("expected conflict on duplicate membership, got %v", err)
	}
}

func TestTeamRepository_Create_SecondTeamForUserIsConflict(t *testing.T) {
	repo := NewTeamRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, team.Team{UserID: 5, Name: "Alpha"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := repo.Create(ctx, team.Team{UserID: 5, Name: "Beta"})
	if !errors.Is(err, league.ErrConflict) {
		t.Fatalf("expected conflict for second team of same user, got %v", err)
	}
}
