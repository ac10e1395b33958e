package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
	"google.golang.org/genai"
)

// GeminiClient optimizes résumés with Google's Gemini models in JSON mode
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	return newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, modelName)
}

func newGeminiClient(ctx context.Context, cc *genai.ClientConfig, modelName string) (*GeminiClient, error) {
	if cc.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: modelName}, nil
}

// cvSchema mirrors model.CVData for the response schema
var cvSchema = func() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	strList := &genai.Schema{Type: genai.TypeArray, Items: str}
	object := func(required []string, fields ...string) *genai.Schema {
		props := make(map[string]*genai.Schema, len(fields))
		for _, f := range fields {
			props[f] = str
		}
		return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"personal_info": object([]string{"ad", "soyad", "unvan"}, "ad", "soyad", "unvan"),
			"contact":       object([]string{"email"}, "email", "phone", "linkedin", "github", "location"),
			"summary":       str,
			"education": {
				Type:  genai.TypeArray,
				Items: object([]string{"school", "degree", "date"}, "school", "degree", "date"),
			},
			"experience": {
				Type:  genai.TypeArray,
				Items: object([]string{"company", "position", "date", "description"}, "company", "position", "date", "description"),
			},
			"projects": {
				Type:  genai.TypeArray,
				Items: object([]string{"name", "description"}, "name", "date", "description"),
			},
			"skills": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"technical": strList,
					"soft":      strList,
				},
				Required: []string{"technical", "soft"},
			},
			"ai_feedback": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		},
		Required: []string{"personal_info", "contact", "summary", "skills"},
	}
}()

// OptimizeCV sends the raw text to Gemini and parses the JSON answer
func (g *GeminiClient) OptimizeCV(ctx context.Context, rawText string) (*model.CVData, error) {
	log.Info().Str("model", g.model).Int("textLen", len(rawText)).Msg("Sending résumé to Gemini")

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(BuildOptimizePrompt(rawText)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: optimizeSystemPrompt}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    cvSchema,
			Temperature:       genai.Ptr[float32](0.2),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API: %w", err)
	}

	if resp.UsageMetadata != nil {
		log.Info().
			Int32("inputTokens", resp.UsageMetadata.PromptTokenCount).
			Int32("outputTokens", resp.UsageMetadata.CandidatesTokenCount).
			Msg("Gemini API call complete")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	cv, err := ParseCVJSON(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("parsing Gemini résumé: %w", err)
	}
	return cv, nil
}
