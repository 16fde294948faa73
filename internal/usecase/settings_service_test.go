package usecase

import (
	"testing"
	"time"

	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/memory"
)

func TestSettingsService_TeamUpdatesLock(t *testing.T) {
	ctx := t.Context()
	service := NewSettingsService(memory.NewSettingsRepository())
	service.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}

	locked, err := service.TeamUpdatesLocked(ctx)
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	if locked {
		t.Fatalf("lock must default to open")
	}

	if err := service.SetTeamUpdatesLocked(ctx, true); err != nil {
		t.Fatalf("set lock: %v", err)
	}
	locked, err = service.TeamUpdatesLocked(ctx)
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	if !locked {
		t.Fatalf("lock must report enabled after set")
	}

	if err := service.SetTeamUpdatesLocked(ctx, false); err != nil {
		t.Fatalf("clear lock: %v", err)
	}
	locked, err = service.TeamUpdatesLocked(ctx)
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	if locked {
		t.Fatalf("lock must report open after clear")
	}
}
