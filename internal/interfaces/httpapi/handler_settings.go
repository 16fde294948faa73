package httpapi

import "net/http"

func (h *Handler) GetTeamLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLock")
	defer span.End()

	locked, err := h.settingsService.TeamUpdatesLocked(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team lock failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamLockDTO{Locked: locked})
}

func (h *Handler) SetTeamLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamLock")
	defer span.End()

	var req setTeamLockRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.settingsService.SetTeamUpdatesLocked(ctx, req.Locked); err != nil {
		h.logger.WarnContext(ctx, "set team lock failed", "locked", req.Locked, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamLockDTO{Locked: req.Locked})
}

type setTeamLockRequest struct {
	Locked bool `json:"locked"`
}

type teamLockDTO struct {
	Locked bool `json:"locked"`
}
