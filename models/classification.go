package models

// AnalysisStatus tracks the single-row analysis lifecycle.
type AnalysisStatus string

const (
	StatusInitial       AnalysisStatus = "initial"
	StatusAnalyzing     AnalysisStatus = "analyzing"
	StatusConfirmed     AnalysisStatus = "confirmed"
	StatusFalsePositive AnalysisStatus = "false_positive"
)

// StatusFor maps the classifier verdict onto the binary display status.
func StatusFor(isExoplanet bool) AnalysisStatus {
	if isExoplanet {
		return StatusConfirmed
	}
	return StatusFalsePositive
}

// PredictRequest is the body of POST /exoplanet/predict.
type PredictRequest struct {
	StellarData StellarData `json:"stellar_data"`
}

type ClassificationResponse struct {
	Message                 string               `json:"message"`
	StellarObjectData       StellarData          `json:"stellar_object_data"`
	ClassificationResult    ClassificationResult `json:"classification_result"`
	ModelAccuracyPercentage float64              `json:"model_accuracy_percentage"`
}

type ClassificationResult struct {
	IsExoplanet                       bool              `json:"is_exoplanet"`
	Classification                    string            `json:"classification"`
	ConfidenceLevel                   string            `json:"confidence_level"`
	AccuracyPercentage                float64           `json:"accuracy_percentage"`
	ExoplanetProbabilityPercentage    float64           `json:"exoplanet_probability_percentage"`
	NonExoplanetProbabilityPercentage float64           `json:"non_exoplanet_probability_percentage"`
	PredictionSummary                 PredictionSummary `json:"prediction_summary"`
}

type PredictionSummary struct {
	Result     string `json:"result"`
	Confidence string `json:"confidence"`
	Accuracy   string `json:"accuracy"`
}

// Issue is a validation problem reported for a false-positive candidate.
type Issue struct {
	Title          string `json:"title"`
	Value          string `json:"value"`
	Recommendation string `json:"recommendation"`
}

// AnalysisResult is what the results dialog shows for the active record.
type AnalysisResult struct {
	Status             AnalysisStatus          `json:"status"`
	Confidence         float64                 `json:"confidence"`
	PlanetName         string                  `json:"planet_name"`
	Data               Candidate               `json:"data"`
	Response           *ClassificationResponse `json:"api_response"`
	SimilarTo          string                  `json:"similar_to,omitempty"`
	SimilarReasoning   string                  `json:"similar_reasoning,omitempty"`
	Issues             []Issue                 `json:"issues,omitempty"`
	SuggestionsSummary string                  `json:"suggestions_summary,omitempty"`
}

// Habitable reports whether the equilibrium temperature sits between 273 K and 373 K.
func (r *AnalysisResult) Habitable() bool {
	teq := r.Data.FirstNonZero(0, "koi_teq", "pl_eqt")
	return teq > 273 && teq < 373
}
