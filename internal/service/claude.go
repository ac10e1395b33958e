package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// ClaudeClient wraps the Anthropic Messages API
type ClaudeClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClaudeClient(apiKey, baseURL, modelName string) *ClaudeClient {
	return &ClaudeClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ── Anthropic API request/response types ──────────────

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// OptimizeCV sends the raw text to Claude and parses the JSON answer
func (c *ClaudeClient) OptimizeCV(ctx context.Context, rawText string) (*model.CVData, error) {
	log.Info().Str("model", c.model).Int("textLen", len(rawText)).Msg("Sending résumé to Claude")

	text, err := c.complete(ctx, optimizeSystemPrompt, BuildOptimizePrompt(rawText), 4000)
	if err != nil {
		return nil, err
	}

	cv, err := ParseCVJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parsing Claude résumé: %w", err)
	}
	return cv, nil
}

// complete runs a single-turn Messages call and returns the first text block
func (c *ClaudeClient) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("Claude API key not configured")
	}

	reqBody := claudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []claudeMessage{
			{Role: "user", Content: user},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("parsing Claude response: %w", err)
	}

	log.Info().
		Int("inputTokens", claudeResp.Usage.InputTokens).
		Int("outputTokens", claudeResp.Usage.OutputTokens).
		Str("stopReason", claudeResp.StopReason).
		Msg("Claude API call complete")

	for _, block := range claudeResp.Content {
		if block.Type == "text" || block.Type == "" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("empty response from Claude")
}
