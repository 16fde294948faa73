package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/settings"
)

// SettingsService exposes the admin toggles stored in app settings.
type SettingsService struct {
	settingsRepo settings.Repository
	now          func() time.Time
}

func NewSettingsService(settingsRepo settings.Repository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// TeamUpdatesLocked reports whether roster changes are currently frozen.
func (s *SettingsService) TeamUpdatesLocked(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.TeamUpdatesLocked")
	defer span.End()

	setting, exists, err := s.settingsRepo.Get(ctx, settings.KeyTeamUpdatesLocked)
	if err != nil {
		return false, fmt.Errorf("get team updates lock: %w", err)
	}
	return exists && setting.Enabled(), nil
}

// SetTeamUpdatesLocked freezes or unfreezes roster changes for non-admins.
func (s *SettingsService) SetTeamUpdatesLocked(ctx context.Context, locked bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.SetTeamUpdatesLocked")
	defer span.End()

	value := "false"
	if locked {
		value = "true"
	}

	if err := s.settingsRepo.Set(ctx, settings.Setting{
		Key:         settings.KeyTeamUpdatesLocked,
		Value:       value,
		Description: "Blocks roster add/remove for non-admin users while matches are scored",
		UpdatedAt:   s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("set team updates lock: %w", err)
	}
	return nil
}
