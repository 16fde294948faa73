package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dsfl/fantasy-league/internal/usecase"
)

func (h *Handler) AddRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req addRosterPlayerRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	membership, err := h.rosterService.AddPlayer(ctx, principal.UserID, req.PlayerID, req.IsCaptain, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "add roster player failed",
			"user_id", principal.UserID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipDTO{
		TeamID:    membership.TeamID,
		PlayerID:  membership.PlayerID,
		IsCaptain: membership.IsCaptain,
		AddedAt:   membership.AddedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) RemoveRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.RemovePlayer(ctx, principal.UserID, playerID, nil); err != nil {
		h.logger.WarnContext(ctx, "remove roster player failed",
			"user_id", principal.UserID,
			"player_id", playerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

type addRosterPlayerRequest struct {
	PlayerID  int64  `json:"player_id" validate:"required,gt=0"`
	IsCaptain bool   `json:"is_captain"`
	MatchID   *int64 `json:"match_id" validate:"omitempty,gt=0"`
}

type membershipDTO struct {
	TeamID    int64  `json:"team_id"`
	PlayerID  int64  `json:"player_id"`
	IsCaptain bool   `json:"is_captain"`
	AddedAt   string `json:"added_at"`
}
