package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClaudeOptimizeCV(t *testing.T) {
	var got claudeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "```json\n" + sampleCVJSON + "\n```"},
			},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 900, "output_tokens": 400},
		})
	}))
	defer srv.Close()

	client := NewClaudeClient("sk-test", srv.URL+"/", "claude-test")
	cv, err := client.OptimizeCV(context.Background(), "Ayşe Yılmaz, Backend Developer")
	require.NoError(t, err)

	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, optimizeSystemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "Ayşe Yılmaz, Backend Developer")
	assert.Equal(t, "Ayşe", cv.PersonalInfo.FirstName)
}

func TestClaudeOptimizeCVErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewClaudeClient("", "http://unused", "m").OptimizeCV(context.Background(), "text")
		assert.ErrorContains(t, err, "not configured")
	})

	t.Run("upstream status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClaudeClient("sk", srv.URL, "m").OptimizeCV(context.Background(), "text")
		assert.ErrorContains(t, err, "returned 503")
	})

	t.Run("schema mismatch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"{\"summary\":\"only\"}"}]}`)
		}))
		defer srv.Close()

		_, err := NewClaudeClient("sk", srv.URL, "m").OptimizeCV(context.Background(), "text")
		assert.ErrorIs(t, err, ErrInvalidCV)
	})
}

func TestGeminiOptimizeCV(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-test:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]string{{"text": sampleCVJSON}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]int{"promptTokenCount": 800, "candidatesTokenCount": 350},
		})
	}))
	defer srv.Close()

	client, err := newGeminiClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	}, "gemini-test")
	require.NoError(t, err)

	cv, err := client.OptimizeCV(context.Background(), "Ayşe Yılmaz")
	require.NoError(t, err)
	assert.Equal(t, "Yılmaz", cv.PersonalInfo.LastName)

	config, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig sent")
	assert.Equal(t, "application/json", config["responseMimeType"])
}

func TestGeminiRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.5-flash")
	assert.ErrorContains(t, err, "not configured")
}
