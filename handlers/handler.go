package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"exoplanet-explorer/batch"
	"exoplanet-explorer/classifier"
	"exoplanet-explorer/explorer"
	"exoplanet-explorer/models"
	"exoplanet-explorer/spreadsheet"
	"exoplanet-explorer/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// History is the persisted analysis and batch-run log.
type History interface {
	RecentAnalyses(ctx context.Context, status string, limit int) ([]models.Analysis, error)
	RecentBatchRuns(ctx context.Context, limit int) ([]models.BatchRun, error)
	SaveBatchRun(ctx context.Context, run *models.BatchRun) error
	Stats(ctx context.Context) (*models.HistoryStats, error)
}

type Options struct {
	MaxUploadSize int64
	MaxRows       int
}

// Handler serves the explorer UI and its JSON API.
type Handler struct {
	explorer *explorer.Service
	pipeline *batch.Pipeline
	history  History
	opts     Options
	logger   *zap.Logger
	progress *batchProgress
}

func New(svc *explorer.Service, pipeline *batch.Pipeline, history History, opts Options, logger *zap.Logger) *Handler {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = 10 << 20
	}
	return &Handler{
		explorer: svc,
		pipeline: pipeline,
		history:  history,
		opts:     opts,
		logger:   logger,
		progress: &batchProgress{},
	}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.logger))
	r.MaxMultipartMemory = h.opts.MaxUploadSize

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/explorer")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/explorer", h.ExplorerPage)
	r.POST("/explorer/analyze", h.AnalyzePage)

	api := r.Group("/api")
	{
		api.GET("/state", h.GetState)
		api.POST("/upload", h.Upload)
		api.POST("/samples/:index", h.LoadSample)
		api.POST("/rows/:index", h.SelectRow)
		api.POST("/modal", h.SetModal)
		api.POST("/analyze", h.Analyze)
		api.POST("/batch", h.RunBatch)
		api.GET("/batch/progress", h.GetBatchProgress)
		api.GET("/scene", h.GetScene)
		api.GET("/lightcurve.png", h.GetLightCurve)
		api.GET("/analyses", h.GetAnalyses)
		api.GET("/batches", h.GetBatches)
		api.GET("/stats", h.GetStats)
	}
	return r, nil
}

// RequestLogger logs one line per request through zap.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// statusFor maps an error onto an HTTP status. fallback is used for errors
// that carry no classification of their own.
func statusFor(err error, fallback int) int {
	var (
		apiErr     *classifier.APIError
		missing    *spreadsheet.MissingColumnError
		tooMany    *spreadsheet.TooManyRowsError
		bodyTooBig *http.MaxBytesError
	)
	switch {
	case errors.Is(err, explorer.ErrNoData),
		errors.Is(err, batch.ErrNoRows),
		errors.Is(err, spreadsheet.ErrEmpty),
		errors.Is(err, spreadsheet.ErrUnsupportedFormat),
		errors.As(err, &missing),
		errors.As(err, &tooMany):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrOutOfRange):
		return http.StatusNotFound
	case errors.As(err, &bodyTooBig):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return 499
	}
	return fallback
}

// respondError writes the JSON error body used by every API route.
func (h *Handler) respondError(c *gin.Context, err error, fallback int) {
	status := statusFor(err, fallback)
	details := ""
	var apiErr *classifier.APIError
	if errors.As(err, &apiErr) {
		details = apiErr.Body
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "details": details})
}
