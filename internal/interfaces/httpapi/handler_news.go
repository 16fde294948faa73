package httpapi

import (
	"net/http"
	"time"
)

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	content, exists, err := h.newsService.GetLatest(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get news failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsDTO{
		Body:      content.Body,
		UpdatedAt: content.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetNews")
	defer span.End()

	var req setNewsRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	content, err := h.newsService.SetLatest(ctx, req.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "set news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsDTO{
		Body:      content.Body,
		UpdatedAt: content.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

type setNewsRequest struct {
	Body string `json:"body" validate:"required"`
}

type newsDTO struct {
	Body      string `json:"body"`
	UpdatedAt string `json:"updated_at"`
}
