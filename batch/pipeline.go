// Package batch classifies every row of an upload in fixed-size concurrent
// groups and renders the outcome as CSV.
package batch

import (
	"context"
	"errors"
	"strconv"
	"time"

	"exoplanet-explorer/classifier"
	"exoplanet-explorer/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultGroupSize bounds the number of prediction calls in flight.
const DefaultGroupSize = 5

// ErrNoRows is returned before any network call when the input is empty.
var ErrNoRows = errors.New("no rows to analyze")

// ProgressFunc receives (completed, total) after each group settles.
type ProgressFunc func(completed, total int)

// Pipeline runs batch classifications against a Predictor.
type Pipeline struct {
	predictor classifier.Predictor
	groupSize int
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a pipeline. A non-positive group size falls back to DefaultGroupSize.
func New(predictor classifier.Predictor, groupSize int, logger *zap.Logger) *Pipeline {
	if groupSize < 1 {
		groupSize = DefaultGroupSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		predictor: predictor,
		groupSize: groupSize,
		logger:    logger,
		now:       time.Now,
	}
}

// GroupSize returns the concurrency width.
func (p *Pipeline) GroupSize() int {
	return p.groupSize
}

// Run classifies rows group by group. Members of a group run concurrently and
// the next group starts only after every member has settled. A failing row is
// recorded as a failed result and never aborts the batch.
//
// The returned slice always has len(rows) entries with RowIndex equal to the
// slice position. When ctx is cancelled, rows that never started are recorded
// as failed and ctx.Err() is returned alongside the results.
func (p *Pipeline) Run(ctx context.Context, rows []models.Candidate, progress ProgressFunc) ([]models.BatchResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	total := len(rows)
	results := make([]models.BatchResult, total)
	p.logger.Info("batch started", zap.Int("rows", total), zap.Int("group_size", p.groupSize))

	for start := 0; start < total; start += p.groupSize {
		end := min(start+p.groupSize, total)

		if err := ctx.Err(); err != nil {
			for i := start; i < total; i++ {
				results[i] = p.failed(i, rows[i], err)
			}
			p.logger.Warn("batch cancelled", zap.Int("completed", start), zap.Int("rows", total))
			return results, err
		}

		// Each goroutine owns results[i]; Wait is the group barrier.
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = p.classify(ctx, i, rows[i])
				return nil
			})
		}
		_ = g.Wait()

		p.logger.Debug("batch group settled", zap.Int("completed", end), zap.Int("rows", total))
		if progress != nil {
			progress(end, total)
		}
	}

	ok, failed := Summarize(results)
	p.logger.Info("batch finished", zap.Int("succeeded", ok), zap.Int("failed", failed))
	return results, nil
}

func (p *Pipeline) classify(ctx context.Context, index int, row models.Candidate) models.BatchResult {
	resp, err := p.predictor.Predict(ctx, row.Payload())
	if err == nil && resp == nil {
		err = errors.New("empty prediction response")
	}
	if err != nil {
		p.logger.Warn("row classification failed", zap.Int("row", index), zap.Error(err))
		return p.failed(index, row, err)
	}
	return models.BatchResult{
		RowIndex:  index,
		Name:      displayName(index, row),
		Input:     row,
		Response:  resp,
		Success:   true,
		Timestamp: p.now(),
	}
}

func (p *Pipeline) failed(index int, row models.Candidate, err error) models.BatchResult {
	return models.BatchResult{
		RowIndex:  index,
		Name:      displayName(index, row),
		Input:     row,
		Error:     err.Error(),
		Timestamp: p.now(),
	}
}

// displayName falls back to "Row N" (1-based) for unnamed rows.
func displayName(index int, row models.Candidate) string {
	if name := row.Name(); name != "Unknown" {
		return name
	}
	if name := row.String("pl_name"); name != "" {
		return name
	}
	return "Row " + strconv.Itoa(index+1)
}

// Summarize counts successful and failed results.
func Summarize(results []models.BatchResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// NewRun builds the persisted summary of a finished batch.
func NewRun(fileName, outputName string, results []models.BatchResult, started, finished time.Time) *models.BatchRun {
	ok, failed := Summarize(results)
	return &models.BatchRun{
		FileName:   fileName,
		OutputName: outputName,
		Total:      len(results),
		Succeeded:  ok,
		Failed:     failed,
		StartedAt:  started,
		FinishedAt: finished,
	}
}
