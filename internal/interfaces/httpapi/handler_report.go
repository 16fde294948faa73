package httpapi

import "net/http"

func (h *Handler) TeamPointsReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamPointsReport")
	defer span.End()

	reports, err := h.reportService.TeamPointsBreakdown(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "team points report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reports)
}

func (h *Handler) PlayerPointsReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerPointsReport")
	defer span.End()

	summaries, err := h.reportService.PlayerPointsSummaries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "player points report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaries)
}
