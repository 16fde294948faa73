package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
	"github.com/dsfl/fantasy-league/internal/platform/logging"
	"github.com/dsfl/fantasy-league/internal/usecase"
)

type Handler struct {
	playerService      *usecase.PlayerService
	teamService        *usecase.TeamService
	rosterService      *usecase.RosterService
	performanceService *usecase.PerformanceService
	reportService      *usecase.ReportService
	newsService        *usecase.NewsService
	settingsService    *usecase.SettingsService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	rosterService *usecase.RosterService,
	performanceService *usecase.PerformanceService,
	reportService *usecase.ReportService,
	newsService *usecase.NewsService,
	settingsService *usecase.SettingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		teamService:        teamService,
		rosterService:      rosterService,
		performanceService: performanceService,
		reportService:      reportService,
		newsService:        newsService,
		settingsService:    settingsService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeBody(body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}

	return id, nil
}

type playerDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
	House    string  `json:"house"`
}

type teamDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Formation   string `json:"formation,omitempty"`
	TotalPoints int    `json:"total_points"`
}

type rosterEntryDTO struct {
	Player    playerDTO `json:"player"`
	IsCaptain bool      `json:"is_captain"`
}

type historyEntryDTO struct {
	ID        int64  `json:"id"`
	PlayerID  int64  `json:"player_id"`
	Action    string `json:"action"`
	ChangedAt string `json:"changed_at"`
	MatchID   *int64 `json:"match_id,omitempty"`
}

type teamViewDTO struct {
	Team    teamDTO           `json:"team"`
	Roster  []rosterEntryDTO  `json:"roster"`
	History []historyEntryDTO `json:"history,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		Name:     v.Name,
		Position: string(v.Position),
		Price:    v.Price,
		House:    v.House,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		UserID:      v.UserID,
		Name:        v.Name,
		Formation:   v.Formation,
		TotalPoints: v.TotalPoints,
	}
}

func historyToDTO(entries []roster.HistoryEntry) []historyEntryDTO {
	items := make([]historyEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyEntryDTO{
			ID:        e.ID,
			PlayerID:  e.PlayerID,
			Action:    string(e.Action),
			ChangedAt: e.ChangedAt.UTC().Format(time.RFC3339),
			MatchID:   e.MatchID,
		})
	}

	return items
}

func teamViewToDTO(view usecase.TeamView) teamViewDTO {
	entries := make([]rosterEntryDTO, 0, len(view.Roster))
	for _, entry := range view.Roster {
		entries = append(entries, rosterEntryDTO{
			Player:    playerToDTO(entry.Player),
			IsCaptain: entry.IsCaptain,
		})
	}

	return teamViewDTO{
		Team:    teamToDTO(view.Team),
		Roster:  entries,
		History: historyToDTO(view.History),
	}
}
