package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/dashboard"
	"github.com/starford/vaultstats/internal/models"
)

// StatsService is the statistics source behind the API.
type StatsService interface {
	Stats(ctx context.Context) (*models.VaultStatistics, error)
	Heatmap(ctx context.Context, series string, months int) (*models.HeatmapData, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc StatsService
}

// NewHandler creates a new Handler.
func NewHandler(svc StatsService) *Handler {
	return &Handler{svc: svc}
}

// Stats handles GET /api/stats.
//
//	@Summary		Compute the vault statistics snapshot
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	VaultStatistics
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, ok := h.stats(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Heatmap handles GET /api/stats/heatmap.
//
//	@Summary		Calendar heatmap of daily creations or modifications
//	@Tags			stats
//	@Produce		json
//	@Param			series	query		string	false	"Daily series"	Enums(creations, modifications)
//	@Param			months	query		int		false	"Months to cover (3..24)"
//	@Success		200		{object}	HeatmapData
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/stats/heatmap [get]
func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	series := q.Get("series")
	if series == "" {
		series = dashboard.SeriesCreations
	}
	var months int
	if raw := q.Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
		months = n
	}

	hm, err := h.svc.Heatmap(r.Context(), series, months)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidSeries) {
			writeError(w, http.StatusBadRequest, "series must be creations or modifications")
		} else {
			slog.Error("heatmap failed", slog.String("series", series), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, hm)
}

// TopTags handles GET /api/stats/tags.
//
//	@Summary		Most used tags
//	@Tags			stats
//	@Produce		json
//	@Param			limit	query		int	false	"Number of tags (1..10)"
//	@Success		200		{object}	TopTagsResponse
//	@Security		BearerAuth
//	@Router			/stats/tags [get]
func (h *Handler) TopTags(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	st, ok := h.stats(w, r)
	if !ok {
		return
	}
	tags := st.TagDistribution
	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	writeJSON(w, http.StatusOK, TopTagsResponse{Tags: tags, TotalTags: st.TotalTags})
}

// HubNotes handles GET /api/stats/hubs.
//
//	@Summary		Notes with the most outgoing links
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	HubNotesResponse
//	@Security		BearerAuth
//	@Router			/stats/hubs [get]
func (h *Handler) HubNotes(w http.ResponseWriter, r *http.Request) {
	st, ok := h.stats(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, HubNotesResponse{Notes: st.HubNotes})
}

// stats fetches the snapshot and writes the error response on failure.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) (*models.VaultStatistics, bool) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("analyze failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return st, true
}
