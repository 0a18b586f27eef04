package explorer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"exoplanet-explorer/assistant"
	"exoplanet-explorer/classifier"
	"exoplanet-explorer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func verdict(isExoplanet bool, accuracy float64) classifier.PredictorFunc {
	return func(_ context.Context, data models.StellarData) (*models.ClassificationResponse, error) {
		return &models.ClassificationResponse{
			StellarObjectData: data,
			ClassificationResult: models.ClassificationResult{
				IsExoplanet:        isExoplanet,
				AccuracyPercentage: accuracy,
				Classification:     map[bool]string{true: "EXOPLANET", false: "NOT_EXOPLANET"}[isExoplanet],
			},
		}, nil
	}
}

type memoryStore struct {
	saved []models.Analysis
	err   error
}

func (m *memoryStore) SaveAnalysis(_ context.Context, a *models.Analysis) error {
	m.saved = append(m.saved, *a)
	return m.err
}

type stubAssistant struct {
	similar     *assistant.SimilarResult
	summary     string
	err         error
	suggestions string
}

func (s *stubAssistant) SuggestSimilar(context.Context, assistant.SimilarInput) (*assistant.SimilarResult, error) {
	return s.similar, s.err
}

func (s *stubAssistant) SummarizeValidation(_ context.Context, suggestions string) (string, error) {
	s.suggestions = suggestions
	return s.summary, s.err
}

func loadedState(t *testing.T, i int) *State {
	t.Helper()
	rec, err := Sample(i)
	require.NoError(t, err)
	st := NewState()
	st.Load(rec, SampleSource(i))
	return st
}

func TestState_LoadResetsResult(t *testing.T) {
	st := loadedState(t, 0)
	st.SetResult(&models.AnalysisResult{Status: models.StatusConfirmed})
	snap := st.Snapshot()
	assert.Equal(t, models.StatusConfirmed, snap.Status)
	assert.True(t, snap.ModalOpen)

	rec, _ := Sample(1)
	st.Load(rec, "sample #2")
	snap = st.Snapshot()
	assert.Equal(t, models.StatusInitial, snap.Status)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.ModalOpen)
	assert.Equal(t, "K00754.01", snap.Record.Name())
	assert.Equal(t, -1, snap.SelectedRow)
}

func TestState_RowsAndSelection(t *testing.T) {
	st := NewState()
	rows := []models.Candidate{{"kepoi_name": "A"}, {"kepoi_name": "B"}, {"kepoi_name": "C"}}
	st.SetRows(rows, "koi.csv")

	snap := st.Snapshot()
	assert.Equal(t, 3, snap.RowCount)
	assert.Equal(t, 0, snap.SelectedRow)
	assert.Equal(t, "A", snap.Record.Name())
	assert.Equal(t, "koi.csv #1", snap.Source)

	require.NoError(t, st.SelectRow(2))
	snap = st.Snapshot()
	assert.Equal(t, "C", snap.Record.Name())
	assert.Equal(t, "koi.csv #3", snap.Source)

	err := st.SelectRow(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "C", st.Record().Name(), "a bad index keeps the current record")
}

func TestState_RecordIsCopied(t *testing.T) {
	st := loadedState(t, 0)
	rec := st.Record()
	rec["kepler_name"] = "mutated"
	assert.Equal(t, "Kepler-227 b", st.Record().Name())
}

func TestSample(t *testing.T) {
	assert.Equal(t, 2, SampleCount())
	_, err := Sample(2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	fp, err := Sample(1)
	require.NoError(t, err)
	assert.Equal(t, 33.46, fp.Payload().PlRade)
}

func TestAnalyze_NoData(t *testing.T) {
	var calls atomic.Int32
	pred := classifier.PredictorFunc(func(context.Context, models.StellarData) (*models.ClassificationResponse, error) {
		calls.Add(1)
		return nil, nil
	})
	svc := NewService(NewState(), pred, nil, nil, zap.NewNop())

	_, err := svc.Analyze(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, calls.Load())
}

func TestAnalyze_Confirmed(t *testing.T) {
	store := &memoryStore{}
	asst := &stubAssistant{similar: &assistant.SimilarResult{
		SimilarExoplanets: []string{"Kepler-10 c", "K2-18 b"},
		Reasoning:         "Similar radius.",
	}}
	st := loadedState(t, 0)
	svc := NewService(st, verdict(true, 94.2), store, asst, zap.NewNop())

	res, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, res.Status)
	assert.Equal(t, 94.2, res.Confidence)
	assert.Equal(t, "Kepler-227 b", res.PlanetName)
	assert.Equal(t, "Kepler-10 c, K2-18 b", res.SimilarTo)
	assert.Empty(t, res.Issues)

	snap := st.Snapshot()
	assert.Equal(t, models.StatusConfirmed, snap.Status)
	assert.Same(t, res, snap.Result)
	assert.True(t, snap.ModalOpen)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "confirmed", store.saved[0].Status)
	assert.Equal(t, "sample #1", store.saved[0].Source)
	assert.Contains(t, store.saved[0].PayloadJSON, `"pl_orbper":9.488036`)
}

func TestAnalyze_RecordReplacedDuringRequest(t *testing.T) {
	store := &memoryStore{}
	st := loadedState(t, 0)
	replacement, err := Sample(1)
	require.NoError(t, err)

	predictor := classifier.PredictorFunc(func(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error) {
		assert.Equal(t, models.StatusAnalyzing, st.Snapshot().Status)
		st.Load(replacement, SampleSource(1))
		return verdict(true, 90)(ctx, data)
	})
	svc := NewService(st, predictor, store, nil, zap.NewNop())

	res, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kepler-227 b", res.PlanetName)

	snap := st.Snapshot()
	assert.Equal(t, "K00754.01", snap.Record.Name())
	assert.Equal(t, models.StatusInitial, snap.Status, "the new record keeps its own status")
	assert.Nil(t, snap.Result)
	assert.False(t, snap.ModalOpen)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "sample #1", store.saved[0].Source)
}

func TestState_SetResultForStaleGeneration(t *testing.T) {
	st := loadedState(t, 0)
	gen := st.Snapshot().Generation

	rec, _ := Sample(1)
	st.Load(rec, "sample #2")
	assert.NotEqual(t, gen, st.Snapshot().Generation)

	assert.False(t, st.SetStatusFor(gen, models.StatusAnalyzing))
	assert.False(t, st.SetResultFor(gen, &models.AnalysisResult{Status: models.StatusConfirmed}))
	assert.Equal(t, models.StatusInitial, st.Snapshot().Status)

	assert.True(t, st.SetResultFor(st.Snapshot().Generation, &models.AnalysisResult{Status: models.StatusConfirmed}))
	assert.Equal(t, models.StatusConfirmed, st.Snapshot().Status)
}

func TestAnalyze_FalsePositive(t *testing.T) {
	asst := &stubAssistant{summary: "Look for a secondary eclipse."}
	st := loadedState(t, 1)
	svc := NewService(st, verdict(false, 88), nil, asst, zap.NewNop())

	res, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusFalsePositive, res.Status)
	assert.Equal(t, "K00754.01", res.PlanetName)

	titles := make([]string, len(res.Issues))
	for i, is := range res.Issues {
		titles[i] = is.Title
	}
	assert.Equal(t, []string{"Stellar eclipse", "Low disposition score", "Implausible radius"}, titles)
	assert.Equal(t, "Look for a secondary eclipse.", res.SuggestionsSummary)
	assert.Contains(t, asst.suggestions, "- Stellar eclipse")
}

func TestAnalyze_AssistantFailureIsIgnored(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	st := loadedState(t, 0)
	svc := NewService(st, verdict(true, 90), store, &stubAssistant{err: errors.New("rate limited")}, zap.NewNop())

	res, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.SimilarTo)
	assert.Equal(t, models.StatusConfirmed, st.Snapshot().Status)
}

func TestAnalyze_APIErrorResetsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	st := loadedState(t, 0)
	store := &memoryStore{}
	svc := NewService(st, classifier.NewClient(server.URL, 0, zap.NewNop()), store, nil, zap.NewNop())

	res, err := svc.Analyze(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.EqualError(t, err, "API error: 503 Service Unavailable")

	var apiErr *classifier.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	snap := st.Snapshot()
	assert.Equal(t, models.StatusInitial, snap.Status)
	assert.Nil(t, snap.Result)
	assert.Empty(t, store.saved)
}
