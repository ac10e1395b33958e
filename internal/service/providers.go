package service

import (
	"context"
	"fmt"

	"github.com/yourusername/cvmatch-api/internal/config"
)

// NewCVOptimizer builds the optimizer selected by LLM_PROVIDER
func NewCVOptimizer(ctx context.Context, cfg *config.Config) (CVOptimizer, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderClaude:
		return NewClaudeClient(cfg.ClaudeAPIKey, cfg.ClaudeBaseURL, cfg.ClaudeModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// NewJobSearcher builds the job search client selected by JOB_PROVIDER
func NewJobSearcher(cfg *config.Config) (JobSearcher, error) {
	switch cfg.JobProvider {
	case config.JobsJooble:
		return NewJoobleClient(cfg.JoobleAPIKey, cfg.JoobleHost, cfg.JobResults), nil
	case config.JobsJSearch:
		return NewJSearchClient(cfg.RapidAPIKey, cfg.JobResults), nil
	case config.JobsAdzuna:
		return NewAdzunaClient(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry, cfg.JobResults), nil
	case config.JobsRemotive:
		return NewRemotiveClient(cfg.JobResults), nil
	case config.JobsNone:
		return NoopJobSearcher{}, nil
	default:
		return nil, fmt.Errorf("unknown job provider %q", cfg.JobProvider)
	}
}
