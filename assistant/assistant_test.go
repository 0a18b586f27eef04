package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exoplanet-explorer/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestSuggestSimilar(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"similarExoplanets\":[\"Kepler-10 c\",\"Kepler-62 e\",\"K2-18 b\",\"TOI-700 d\"],\"reasoning\":\"Comparable radii.\"}\n```"}
	svc := NewService(gen, zap.NewNop())

	out, err := svc.SuggestSimilar(context.Background(), SimilarInput{
		PlanetName:         "Kepler-227 b",
		PlanetRadius:       2.26,
		OrbitalPeriod:      9.488036,
		StellarTemperature: 5455,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kepler-10 c", "Kepler-62 e", "K2-18 b"}, out.SimilarExoplanets)
	assert.Equal(t, "Comparable radii.", out.Reasoning)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Exoplanet Name: Kepler-227 b")
	assert.Contains(t, gen.prompts[0], "Planet Radius (Earth radii): 2.26")
}

func TestSuggestSimilar_Errors(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
	_, err := svc.SuggestSimilar(context.Background(), SimilarInput{PlanetName: "x"})
	assert.ErrorContains(t, err, "quota exceeded")

	svc = NewService(&fakeGenerator{reply: "not json"}, zap.NewNop())
	_, err = svc.SuggestSimilar(context.Background(), SimilarInput{PlanetName: "x"})
	assert.ErrorContains(t, err, "failed to parse model response")
}

func TestSummarizeValidation(t *testing.T) {
	svc := NewService(&fakeGenerator{reply: `{"summary": " Re-check the centroid. "}`}, zap.NewNop())
	summary, err := svc.SummarizeValidation(context.Background(), "- Centroid offset (1): check pixels")
	require.NoError(t, err)
	assert.Equal(t, "Re-check the centroid.", summary)

	svc = NewService(&fakeGenerator{reply: "Plain answer."}, zap.NewNop())
	summary, err = svc.SummarizeValidation(context.Background(), "- something")
	require.NoError(t, err)
	assert.Equal(t, "Plain answer.", summary)

	_, err = svc.SummarizeValidation(context.Background(), "  ")
	assert.Error(t, err)
}

func TestChat_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultChatModel, req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "hello", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer server.Close()

	chat := NewChat(server.URL+"/v1/", "secret", "", time.Second)
	text, err := chat.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestChat_Errors(t *testing.T) {
	unauthorized := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer unauthorized.Close()

	_, err := NewChat(unauthorized.URL, "bad", "", time.Second).Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "chat API error: 401 invalid key")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()

	_, err = NewChat(empty.URL, "k", "", time.Second).Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "no response")
}

func TestNew_Disabled(t *testing.T) {
	svc, err := New(context.Background(), config.AssistantConfig{}, time.Second, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = New(context.Background(), config.AssistantConfig{Provider: "openai"}, time.Second, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, svc, "missing key disables the assistant")

	_, err = New(context.Background(), config.AssistantConfig{Provider: "claude", APIKey: "k"}, time.Second, zap.NewNop())
	assert.Error(t, err)

	svc, err = New(context.Background(), config.AssistantConfig{Provider: "deepseek", APIKey: "k"}, time.Second, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
