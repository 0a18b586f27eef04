package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"exoplanet-explorer/explorer"
	"exoplanet-explorer/spreadsheet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StateResponse struct {
	explorer.Snapshot
	Samples int `json:"samples"`
}

func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, StateResponse{
		Snapshot: h.explorer.State().Snapshot(),
		Samples:  explorer.SampleCount(),
	})
}

// Upload loads the first row (mode=single, required columns enforced) or
// every row (mode=all) of a CSV or Excel file.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadSize)

	fh, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, fmt.Errorf("file is required: %w", err), http.StatusBadRequest)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}
	defer f.Close()

	state := h.explorer.State()
	switch mode := c.DefaultPostForm("mode", "single"); mode {
	case "single":
		rec, err := spreadsheet.LoadSingle(fh.Filename, f)
		if err != nil {
			h.respondError(c, err, http.StatusBadRequest)
			return
		}
		state.Load(rec, fh.Filename)
	case "all":
		rows, err := spreadsheet.LoadAll(fh.Filename, f, h.opts.MaxRows)
		if err != nil {
			h.respondError(c, err, http.StatusBadRequest)
			return
		}
		state.SetRows(rows, fh.Filename)
	default:
		h.respondError(c, fmt.Errorf("unknown mode %q", mode), http.StatusBadRequest)
		return
	}

	h.logger.Info("File loaded",
		zap.String("file", fh.Filename),
		zap.Int64("size", fh.Size))
	h.GetState(c)
}

func (h *Handler) LoadSample(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.respondError(c, fmt.Errorf("invalid sample index %q", c.Param("index")), http.StatusBadRequest)
		return
	}
	rec, err := explorer.Sample(index)
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}
	h.explorer.State().Load(rec, explorer.SampleSource(index))
	h.GetState(c)
}

func (h *Handler) SelectRow(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.respondError(c, fmt.Errorf("invalid row index %q", c.Param("index")), http.StatusBadRequest)
		return
	}
	if err := h.explorer.State().SelectRow(index); err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}
	h.GetState(c)
}

type ModalRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) SetModal(c *gin.Context) {
	var request ModalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	h.explorer.State().SetModalOpen(request.Open)
	h.GetState(c)
}

// Analyze classifies the active record. Errors other than missing data come
// from the prediction service.
func (h *Handler) Analyze(c *gin.Context) {
	result, err := h.explorer.Analyze(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzePage is the form-post variant: it redirects back to the explorer
// or renders the error page.
func (h *Handler) AnalyzePage(c *gin.Context) {
	if _, err := h.explorer.Analyze(c.Request.Context()); err != nil {
		status := statusFor(err, http.StatusBadGateway)
		msg := "Analysis failed"
		if errors.Is(err, explorer.ErrNoData) {
			msg = "No data loaded"
		}
		c.HTML(status, "error.html", gin.H{"error": msg, "details": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/explorer")
}
