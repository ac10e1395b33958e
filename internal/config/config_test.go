package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JOOBLE_API_KEY", "jooble-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, JobsJooble, cfg.JobProvider)
	assert.Equal(t, "tr.jooble.org", cfg.JoobleHost)
	assert.Equal(t, 6, cfg.JobResults)
	assert.Equal(t, "Istanbul", cfg.DefaultCity)
	assert.Equal(t, int64(5_242_880), cfg.MaxFileSizeBytes)
	assert.Equal(t, defaultOrigins, cfg.AllowedOrigins)
}

func TestLoadRequiresProviderKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "gemini")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	t.Setenv("LLM_PROVIDER", "Claude")
	t.Setenv("CLAUDE_API_KEY", "")
	_, err = Load()
	assert.ErrorContains(t, err, "CLAUDE_API_KEY")

	t.Setenv("CLAUDE_API_KEY", "sk-test")
	t.Setenv("JOB_PROVIDER", "none")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, cfg.LLMProvider)
}

func TestLoadRejectsUnknownProviders(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	t.Setenv("LLM_PROVIDER", "llama")
	_, err := Load()
	assert.ErrorContains(t, err, "LLM_PROVIDER")

	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("JOB_PROVIDER", "monster")
	_, err = Load()
	assert.ErrorContains(t, err, "JOB_PROVIDER")
}

func TestLoadRequiresJobProviderKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	for _, key := range []string{"JOOBLE_API_KEY", "RAPIDAPI_KEY", "ADZUNA_APP_ID", "ADZUNA_APP_KEY"} {
		t.Setenv(key, "")
	}

	tests := []struct {
		provider string
		want     string
		key      string
	}{
		{JobsJooble, "JOOBLE_API_KEY", "JOOBLE_API_KEY"},
		{JobsJSearch, "RAPIDAPI_KEY", "RAPIDAPI_KEY"},
		{JobsAdzuna, "ADZUNA_APP_ID", "ADZUNA_APP_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("JOB_PROVIDER", tt.provider)

			_, err := Load()
			assert.ErrorContains(t, err, tt.want)

			t.Setenv(tt.key, "set")
			if tt.provider == JobsAdzuna {
				_, err = Load()
				assert.ErrorContains(t, err, "ADZUNA_APP_KEY")
				t.Setenv("ADZUNA_APP_KEY", "set")
			}
			_, err = Load()
			assert.NoError(t, err)
		})
	}

	t.Setenv("JOB_PROVIDER", "remotive")
	_, err := Load()
	assert.NoError(t, err, "remotive needs no key")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JOB_PROVIDER", "none")
	t.Setenv("JOB_RESULTS", "12")
	t.Setenv("MAX_FILE_SIZE_BYTES", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://cv.example.com , ,http://localhost:4000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, JobsNone, cfg.JobProvider)
	assert.Equal(t, 12, cfg.JobResults)
	assert.Equal(t, int64(5_242_880), cfg.MaxFileSizeBytes)
	assert.Equal(t, []string{"https://cv.example.com", "http://localhost:4000"}, cfg.AllowedOrigins)
}
