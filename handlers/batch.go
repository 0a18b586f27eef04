package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"exoplanet-explorer/batch"
	"exoplanet-explorer/models"
	"exoplanet-explorer/spreadsheet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BatchProgress is the completed/total pair of the latest batch run.
type BatchProgress struct {
	Running   bool   `json:"running"`
	Source    string `json:"source"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type batchProgress struct {
	mu  sync.RWMutex
	cur BatchProgress
}

func (p *batchProgress) start(source string, total int) {
	p.mu.Lock()
	p.cur = BatchProgress{Running: true, Source: source, Total: total}
	p.mu.Unlock()
}

func (p *batchProgress) update(done, total int) {
	p.mu.Lock()
	p.cur.Completed, p.cur.Total = done, total
	p.mu.Unlock()
}

func (p *batchProgress) finish() {
	p.mu.Lock()
	p.cur.Running = false
	p.mu.Unlock()
}

func (p *batchProgress) get() BatchProgress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur
}

// GetBatchProgress reports how far the latest batch run has got.
func (h *Handler) GetBatchProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.progress.get())
}

// RunBatch classifies every row of the uploaded file, or of the rows already
// loaded when no file is sent, and answers with the results CSV.
func (h *Handler) RunBatch(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadSize)

	rows, source, err := h.batchRows(c)
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}

	started := time.Now()
	h.progress.start(source, len(rows))
	results, err := h.pipeline.Run(c.Request.Context(), rows, func(done, total int) {
		h.progress.update(done, total)
		h.logger.Info("Batch progress", zap.Int("completed", done), zap.Int("total", total))
	})
	h.progress.finish()
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}
	finished := time.Now()

	var buf bytes.Buffer
	if err := batch.WriteCSV(&buf, results); err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	outName := batch.FileName(finished)
	run := batch.NewRun(source, outName, results, started, finished)
	if h.history != nil {
		if err := h.history.SaveBatchRun(c.Request.Context(), run); err != nil {
			h.logger.Warn("Failed to save batch run", zap.Error(err))
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	c.Header("X-Batch-Succeeded", strconv.Itoa(run.Succeeded))
	c.Header("X-Batch-Failed", strconv.Itoa(run.Failed))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) batchRows(c *gin.Context) ([]models.Candidate, string, error) {
	fh, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		rows := h.explorer.State().Rows()
		if len(rows) == 0 {
			if rec := h.explorer.State().Record(); len(rec) > 0 {
				rows = []models.Candidate{rec}
			}
		}
		if len(rows) == 0 {
			return nil, "", batch.ErrNoRows
		}
		return rows, h.explorer.State().Snapshot().Source, nil
	case err != nil:
		return nil, "", err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	rows, err := spreadsheet.LoadAll(fh.Filename, f, h.opts.MaxRows)
	if err != nil {
		return nil, "", err
	}
	return rows, fh.Filename, nil
}
