package models

import "time"

// BatchResult is the settled outcome of one row in a batch run. It is
// created once and never updated.
type BatchResult struct {
	RowIndex  int                     `json:"row_index"`
	Name      string                  `json:"name"`
	Input     Candidate               `json:"input"`
	Response  *ClassificationResponse `json:"response,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Success   bool                    `json:"success"`
	Timestamp time.Time               `json:"timestamp"`
}

// Analysis is a persisted single-row classification.
type Analysis struct {
	ID                      string    `json:"id" gorm:"primaryKey"`
	PlanetName              string    `json:"planet_name" gorm:"index"`
	Status                  string    `json:"status" gorm:"index"`
	Confidence              float64   `json:"confidence"`
	Classification          string    `json:"classification"`
	ConfidenceLevel         string    `json:"confidence_level"`
	ExoplanetProbability    float64   `json:"exoplanet_probability"`
	NonExoplanetProbability float64   `json:"non_exoplanet_probability"`
	ModelAccuracy           float64   `json:"model_accuracy"`
	PayloadJSON             string    `json:"payload_json"`
	Source                  string    `json:"source"`
	CreatedAt               time.Time `json:"created_at" gorm:"index"`
}

// BatchRun is a persisted summary of one batch run. Row results are not stored.
type BatchRun struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	FileName   string    `json:"file_name"`
	OutputName string    `json:"output_name"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at" gorm:"index"`
	FinishedAt time.Time `json:"finished_at"`
}

// HistoryStats aggregates the analysis history.
type HistoryStats struct {
	Total          int64   `json:"total"`
	Confirmed      int64   `json:"confirmed"`
	FalsePositives int64   `json:"false_positives"`
	AvgConfidence  float64 `json:"avg_confidence"`
	BatchRuns      int64   `json:"batch_runs"`
	BatchRows      int64   `json:"batch_rows"`
}
