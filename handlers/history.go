package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errNoHistory = errors.New("history storage is not configured")

// GetAnalyses lists recent analyses. Query: limit (default 50), status.
func (h *Handler) GetAnalyses(c *gin.Context) {
	if h.history == nil {
		h.respondError(c, errNoHistory, http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	analyses, err := h.history.RecentAnalyses(c.Request.Context(), status, limit)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, analyses)
}

func (h *Handler) GetBatches(c *gin.Context) {
	if h.history == nil {
		h.respondError(c, errNoHistory, http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.history.RecentBatchRuns(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) GetStats(c *gin.Context) {
	if h.history == nil {
		h.respondError(c, errNoHistory, http.StatusServiceUnavailable)
		return
	}
	stats, err := h.history.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, stats)
}
