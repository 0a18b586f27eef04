package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"EXO_PORT", "PREDICT_API_URL", "PREDICT_TIMEOUT", "PREDICT_MOCK", "BATCH_GROUP_SIZE",
		"DATABASE_PATH", "LOG_LEVEL", "ASSISTANT_PROVIDER", "GEMINI_API_KEY", "DEEPSEEK_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Batch.GroupSize)
	assert.Equal(t, "http://localhost:8000", cfg.Classifier.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.GetClassifierTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Classifier.BaseURL = "http://predict:9000"
	cfg.Batch.GroupSize = 3
	cfg.Assistant.Provider = "gemini"
	cfg.Assistant.APIKey = "key-from-file"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://predict:9000", loaded.Classifier.BaseURL)
	assert.Equal(t, 3, loaded.Batch.GroupSize)
	assert.Equal(t, "key-from-file", loaded.Assistant.APIKey)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREDICT_API_URL", "http://env:8000")
	t.Setenv("PREDICT_MOCK", "true")
	t.Setenv("BATCH_GROUP_SIZE", "7")
	t.Setenv("ASSISTANT_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "env-gemini")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000", cfg.Classifier.BaseURL)
	assert.True(t, cfg.Classifier.Mock)
	assert.Equal(t, 7, cfg.Batch.GroupSize)
	assert.Equal(t, "env-gemini", cfg.Assistant.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.GroupSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Classifier.Timeout = "soon"
	assert.ErrorContains(t, cfg.Validate(), "classifier.timeout")

	cfg = DefaultConfig()
	cfg.Assistant.Provider = "llama"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Classifier.BaseURL = ""
	assert.Error(t, cfg.Validate())
	cfg.Classifier.Mock = true
	assert.NoError(t, cfg.Validate())
}
