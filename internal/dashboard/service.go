// Package dashboard is the entry point renderers use to obtain statistics.
// It shares one in-flight analysis between concurrent callers and turns the
// daily series of a snapshot into heatmaps.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/stats"
)

// Heatmap series names.
const (
	SeriesCreations     = "creations"
	SeriesModifications = "modifications"
)

// Analyzer produces a statistics snapshot.
type Analyzer interface {
	Analyze(ctx context.Context) (*models.VaultStatistics, error)
}

// Service coordinates analysis runs for the API, MCP and report renderers.
type Service struct {
	analyzer      Analyzer
	heatmapMonths int
	now           func() time.Time
	group         singleflight.Group
}

// NewService creates a Service. heatmapMonths is the default heatmap range.
func NewService(a Analyzer, heatmapMonths int) *Service {
	return &Service{
		analyzer:      a,
		heatmapMonths: stats.ClampMonths(heatmapMonths),
		now:           time.Now,
	}
}

// Stats runs an analysis, or joins the one already in flight. The returned
// snapshot may be shared with other callers and must not be modified.
func (s *Service) Stats(ctx context.Context) (*models.VaultStatistics, error) {
	ch := s.group.DoChan("stats", func() (any, error) {
		// One caller going away must not fail the others.
		return s.analyzer.Analyze(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.VaultStatistics), nil
	}
}

// Heatmap builds the calendar heatmap of one daily series. months <= 0 uses
// the configured default; other values are clamped to the supported range.
func (s *Service) Heatmap(ctx context.Context, series string, months int) (*models.HeatmapData, error) {
	if series != SeriesCreations && series != SeriesModifications {
		return nil, fmt.Errorf("dashboard: series %q: %w", series, apperr.ErrInvalidSeries)
	}
	if months <= 0 {
		months = s.heatmapMonths
	}

	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return HeatmapOf(st, series, months, s.now())
}

// HeatmapOf builds the heatmap of series from an existing snapshot.
func HeatmapOf(st *models.VaultStatistics, series string, months int, now time.Time) (*models.HeatmapData, error) {
	var data []models.DateCount
	switch series {
	case SeriesCreations:
		data = st.CreationsByDate
	case SeriesModifications:
		data = st.ModificationsByDate
	default:
		return nil, fmt.Errorf("dashboard: series %q: %w", series, apperr.ErrInvalidSeries)
	}
	hm := stats.BuildHeatmap(series, data, months, now)
	return &hm, nil
}
