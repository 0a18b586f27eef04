package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"exoplanet-explorer/assistant"
	"exoplanet-explorer/classifier"
	"exoplanet-explorer/models"

	"go.uber.org/zap"
)

// ErrNoData is returned when Analyze runs without an active record.
var ErrNoData = errors.New("no data loaded: upload a file or pick a sample first")

// AnalysisStore persists finished analyses.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a *models.Analysis) error
}

// Assistant supplies the optional summaries attached to a result.
type Assistant interface {
	SuggestSimilar(ctx context.Context, in assistant.SimilarInput) (*assistant.SimilarResult, error)
	SummarizeValidation(ctx context.Context, suggestions string) (string, error)
}

type Service struct {
	state     *State
	predictor classifier.Predictor
	store     AnalysisStore
	assistant Assistant
	logger    *zap.Logger
}

// NewService wires the analysis flow. store and asst are optional.
func NewService(state *State, predictor classifier.Predictor, store AnalysisStore, asst Assistant, logger *zap.Logger) *Service {
	return &Service{
		state:     state,
		predictor: predictor,
		store:     store,
		assistant: asst,
		logger:    logger,
	}
}

func (s *Service) State() *State { return s.state }

// Analyze classifies the active record. On failure the status returns to
// initial and no result is stored. There is no retry. If another record is
// loaded while the request is in flight, the result is returned and saved to
// history but not attached to the new record.
func (s *Service) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	snap := s.state.Snapshot()
	if !snap.HasRecord() {
		return nil, ErrNoData
	}
	record := snap.Record
	gen := snap.Generation

	s.state.SetStatusFor(gen, models.StatusAnalyzing)
	resp, err := s.predictor.Predict(ctx, record.Payload())
	if err == nil && resp == nil {
		err = errors.New("empty prediction response")
	}
	if err != nil {
		s.state.SetStatusFor(gen, models.StatusInitial)
		s.logger.Error("Classification failed",
			zap.String("planet", record.Name()),
			zap.Error(err))
		return nil, err
	}

	status := models.StatusFor(resp.ClassificationResult.IsExoplanet)
	result := &models.AnalysisResult{
		Status:     status,
		Confidence: resp.ClassificationResult.AccuracyPercentage,
		PlanetName: record.Name(),
		Data:       record,
		Response:   resp,
	}
	if status == models.StatusFalsePositive {
		result.Issues = models.DeriveIssues(record)
	}
	s.enrich(ctx, result)

	if !s.state.SetResultFor(gen, result) {
		s.logger.Warn("Active record changed during classification, result not attached",
			zap.String("planet", result.PlanetName))
	}
	s.logger.Info("Classification complete",
		zap.String("planet", result.PlanetName),
		zap.String("status", string(status)),
		zap.Float64("confidence", result.Confidence))

	s.persist(ctx, result, snap.Source)
	return result, nil
}

// enrich attaches assistant summaries. Failures are logged and ignored.
func (s *Service) enrich(ctx context.Context, result *models.AnalysisResult) {
	if s.assistant == nil {
		return
	}
	record := result.Data

	switch result.Status {
	case models.StatusConfirmed:
		similar, err := s.assistant.SuggestSimilar(ctx, assistant.SimilarInput{
			PlanetName:         result.PlanetName,
			PlanetRadius:       record.FirstNonZero(0, "koi_prad", "pl_rade"),
			OrbitalPeriod:      record.FirstNonZero(0, "koi_period", "pl_orbper"),
			StellarTemperature: record.FirstNonZero(0, "koi_steff", "st_teff"),
		})
		if err != nil {
			s.logger.Warn("Similar exoplanet lookup failed", zap.Error(err))
			return
		}
		result.SimilarTo = strings.Join(similar.SimilarExoplanets, ", ")
		result.SimilarReasoning = similar.Reasoning

	case models.StatusFalsePositive:
		if len(result.Issues) == 0 {
			return
		}
		summary, err := s.assistant.SummarizeValidation(ctx, models.ValidationSuggestions(result.Issues))
		if err != nil {
			s.logger.Warn("Validation summary failed", zap.Error(err))
			return
		}
		result.SuggestionsSummary = summary
	}
}

func (s *Service) persist(ctx context.Context, result *models.AnalysisResult, source string) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(result.Data.Payload())
	if err != nil {
		s.logger.Warn("Failed to encode payload", zap.Error(err))
	}

	cr := result.Response.ClassificationResult
	a := &models.Analysis{
		PlanetName:              result.PlanetName,
		Status:                  string(result.Status),
		Confidence:              result.Confidence,
		Classification:          cr.Classification,
		ConfidenceLevel:         cr.ConfidenceLevel,
		ExoplanetProbability:    cr.ExoplanetProbabilityPercentage,
		NonExoplanetProbability: cr.NonExoplanetProbabilityPercentage,
		ModelAccuracy:           result.Response.ModelAccuracyPercentage,
		PayloadJSON:             string(payload),
		Source:                  source,
	}
	if err := s.store.SaveAnalysis(ctx, a); err != nil {
		s.logger.Warn("Failed to save analysis", zap.Error(err))
	}
}
