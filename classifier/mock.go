package classifier

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"exoplanet-explorer/models"
)

// MockModelAccuracy is the overall accuracy the mock reports for its "model".
const MockModelAccuracy = 82.4

// Mock answers locally in the service's response format. It treats a
// payload as a planet when it has a positive period and depth and a radius
// of at most 20 Earth radii.
type Mock struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a mock that waits delay before answering.
func NewMock(delay time.Duration, seed uint64) *Mock {
	return &Mock{
		delay: delay,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (m *Mock) Predict(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	isPlanet := data.PlOrbper > 0 && data.PlTrandep > 0 && data.PlRade > 0 && data.PlRade <= 20

	m.mu.Lock()
	accuracy := 85 + m.rng.Float64()*14.96
	probability := m.rng.Float64() * 15
	m.mu.Unlock()
	if isPlanet {
		probability += 85
	}

	level := confidenceLevel(accuracy)
	label := "NOT_EXOPLANET"
	if isPlanet {
		label = "EXOPLANET"
	}

	return &models.ClassificationResponse{
		Message:           "Exoplanet classification completed",
		StellarObjectData: data,
		ClassificationResult: models.ClassificationResult{
			IsExoplanet:                       isPlanet,
			Classification:                    label,
			ConfidenceLevel:                   level,
			AccuracyPercentage:                round2(accuracy),
			ExoplanetProbabilityPercentage:    round2(probability),
			NonExoplanetProbabilityPercentage: round2(100 - probability),
			PredictionSummary: models.PredictionSummary{
				Result:     label,
				Confidence: level,
				Accuracy:   fmt.Sprintf("%.2f%%", accuracy),
			},
		},
		ModelAccuracyPercentage: MockModelAccuracy,
	}, nil
}

func confidenceLevel(accuracy float64) string {
	switch {
	case accuracy > 95:
		return "VERY_HIGH"
	case accuracy > 85:
		return "HIGH"
	default:
		return "MEDIUM"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
