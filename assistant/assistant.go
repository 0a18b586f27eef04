// Package assistant produces the optional generative-text summaries shown
// next to a classification: similar known planets for confirmed candidates
// and a follow-up summary for false positives.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"exoplanet-explorer/config"

	"go.uber.org/zap"
)

// MaxSimilar caps the number of similar planets returned.
const MaxSimilar = 3

// Generator turns a prompt into text. Implementations exist for Gemini and
// OpenAI-compatible chat endpoints.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type SimilarInput struct {
	PlanetName         string  `json:"planet_name"`
	PlanetRadius       float64 `json:"planet_radius"`
	OrbitalPeriod      float64 `json:"orbital_period"`
	StellarTemperature float64 `json:"stellar_temperature"`
}

type SimilarResult struct {
	SimilarExoplanets []string `json:"similarExoplanets"`
	Reasoning         string   `json:"reasoning"`
}

type summaryResult struct {
	Summary string `json:"summary"`
}

// Service wraps a Generator with the two prompts and response parsing.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

func NewService(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// New builds the assistant configured in cfg. It returns nil without error
// when no provider or key is configured.
func New(ctx context.Context, cfg config.AssistantConfig, timeout time.Duration, logger *zap.Logger) (*Service, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" || cfg.APIKey == "" {
		return nil, nil
	}

	var gen Generator
	switch provider {
	case "gemini":
		g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		gen = g
	case "openai", "deepseek":
		gen = NewChat(cfg.BaseURL, cfg.APIKey, cfg.Model, timeout)
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}

	logger.Info("Assistant enabled", zap.String("provider", provider))
	return NewService(gen, logger), nil
}

// SuggestSimilar asks for up to three known exoplanets resembling the input.
func (s *Service) SuggestSimilar(ctx context.Context, in SimilarInput) (*SimilarResult, error) {
	text, err := s.gen.Generate(ctx, similarPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("similar exoplanets: %w", err)
	}

	var out SimilarResult
	if err := decodeJSON(text, &out); err != nil {
		return nil, fmt.Errorf("similar exoplanets: %w", err)
	}
	if len(out.SimilarExoplanets) > MaxSimilar {
		out.SimilarExoplanets = out.SimilarExoplanets[:MaxSimilar]
	}
	s.logger.Debug("Similar exoplanets suggested",
		zap.String("planet", in.PlanetName),
		zap.Strings("similar", out.SimilarExoplanets))
	return &out, nil
}

// SummarizeValidation condenses the validation suggestions for a false positive.
func (s *Service) SummarizeValidation(ctx context.Context, suggestions string) (string, error) {
	if strings.TrimSpace(suggestions) == "" {
		return "", errors.New("no validation suggestions to summarize")
	}
	text, err := s.gen.Generate(ctx, validationPrompt(suggestions))
	if err != nil {
		return "", fmt.Errorf("validation summary: %w", err)
	}

	var out summaryResult
	if err := decodeJSON(text, &out); err != nil {
		// Plain prose is an acceptable answer here.
		return strings.TrimSpace(text), nil
	}
	return strings.TrimSpace(out.Summary), nil
}

// decodeJSON tolerates Markdown code fences around the JSON object.
func decodeJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}
