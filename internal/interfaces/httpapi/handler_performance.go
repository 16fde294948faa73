package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.performanceService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.performanceService.CreateMatch(ctx, req.Name, date)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "match_name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.performanceService.DeleteMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultDTO{TeamTotals: totals})
}

func (h *Handler) SubmitMatchPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchPerformances")
	defer span.End()

	var req submitPerformancesRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseOptionalDate(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.PerformanceInput, 0, len(req.Performances))
	for _, p := range req.Performances {
		inputs = append(inputs, usecase.PerformanceInput{
			PlayerID:      p.PlayerID,
			Goals:         p.Goals,
			Assists:       p.Assists,
			CleanSheet:    p.CleanSheet,
			GoalsConceded: p.GoalsConceded,
			YellowCards:   p.YellowCards,
			RedCards:      p.RedCards,
			MinutesPlayed: p.MinutesPlayed,
			BonusPoints:   p.BonusPoints,
		})
	}

	result, err := h.performanceService.SubmitMatchPerformances(ctx, usecase.MatchSubmission{
		MatchName:    req.MatchName,
		MatchDate:    date,
		Performances: inputs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit match performances failed", "match_name", req.MatchName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionResultDTO{
		Match:        matchToDTO(result.Match),
		PlayerPoints: result.PlayerPoints,
		TeamTotals:   result.TeamTotals,
	})
}

func (h *Handler) ResetAllPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetAllPoints")
	defer span.End()

	totals, err := h.performanceService.ResetAllPoints(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset all points failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultDTO{TeamTotals: totals})
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}

	return &parsed, nil
}

type createMatchRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Date string `json:"date"`
}

type performanceInputRequest struct {
	PlayerID      int64 `json:"player_id" validate:"required,gt=0"`
	Goals         int   `json:"goals" validate:"gte=0"`
	Assists       int   `json:"assists" validate:"gte=0"`
	CleanSheet    bool  `json:"clean_sheet"`
	GoalsConceded int   `json:"goals_conceded" validate:"gte=0"`
	YellowCards   int   `json:"yellow_cards" validate:"gte=0"`
	RedCards      int   `json:"red_cards" validate:"gte=0"`
	MinutesPlayed int   `json:"minutes_played" validate:"gte=0"`
	BonusPoints   int   `json:"bonus_points" validate:"gte=0"`
}

type submitPerformancesRequest struct {
	MatchName    string                    `json:"match_name" validate:"required,max=200"`
	MatchDate    string                    `json:"match_date"`
	Performances []performanceInputRequest `json:"performances" validate:"required,min=1,dive"`
}

type matchDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type submissionResultDTO struct {
	Match        matchDTO      `json:"match"`
	PlayerPoints map[int64]int `json:"player_points"`
	TeamTotals   map[int64]int `json:"team_totals"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:   v.ID,
		Name: v.Name,
		Date: v.Date.UTC().Format(time.RFC3339),
	}
}
