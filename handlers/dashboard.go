package handlers

import (
	"context"
	"net/http"

	"exoplanet-explorer/explorer"
	"exoplanet-explorer/models"
	"exoplanet-explorer/visualization"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExplorerPageData struct {
	State         explorer.Snapshot
	Scene         visualization.Scene
	Samples       []Option
	Rows          []Option
	Analyses      []models.Analysis
	Stats         *models.HistoryStats
	StatusFilter  string
	MaxUploadSize int64
}

// Option is one entry of the sample buttons or the row picker.
type Option struct {
	Index int
	Label string
	Name  string
}

// ExplorerPage renders the explorer with the current record and history.
func (h *Handler) ExplorerPage(c *gin.Context) {
	status := c.Query("status")
	snap := h.explorer.State().Snapshot()

	data := ExplorerPageData{
		State:         snap,
		Scene:         visualization.Derive(snap.Record, snap.Status),
		Samples:       sampleOptions(),
		Rows:          rowOptions(h.explorer.State().Rows()),
		StatusFilter:  status,
		MaxUploadSize: h.opts.MaxUploadSize,
	}
	data.Analyses, data.Stats = h.loadHistory(c.Request.Context(), status)

	c.HTML(http.StatusOK, "explorer.html", data)
}

func sampleOptions() []Option {
	labels := []string{"Sample data (real)", "Sample data (false positive)"}
	opts := make([]Option, 0, explorer.SampleCount())
	for i := 0; i < explorer.SampleCount(); i++ {
		rec, _ := explorer.Sample(i)
		label := explorer.SampleSource(i)
		if i < len(labels) {
			label = labels[i]
		}
		opts = append(opts, Option{Index: i, Label: label, Name: rec.Name()})
	}
	return opts
}

func rowOptions(rows []models.Candidate) []Option {
	opts := make([]Option, len(rows))
	for i, r := range rows {
		opts[i] = Option{Index: i, Name: r.Name()}
	}
	return opts
}

// loadHistory is best-effort; the page still renders without it.
func (h *Handler) loadHistory(ctx context.Context, status string) ([]models.Analysis, *models.HistoryStats) {
	if h.history == nil {
		return nil, nil
	}
	analyses, err := h.history.RecentAnalyses(ctx, status, 20)
	if err != nil {
		h.logger.Warn("Failed to load analyses", zap.Error(err))
	}
	stats, err := h.history.Stats(ctx)
	if err != nil {
		h.logger.Warn("Failed to load stats", zap.Error(err))
	}
	return analyses, stats
}
