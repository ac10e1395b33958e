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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// JoobleClient wraps the Jooble job search REST API.
// The API key is part of the URL path.
type JoobleClient struct {
	apiKey  string
	baseURL string
	results int
	client  *http.Client
}

func NewJoobleClient(apiKey, host string, results int) *JoobleClient {
	return &JoobleClient{
		apiKey:  apiKey,
		baseURL: "https://" + strings.TrimRight(host, "/"),
		results: results,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type joobleRequest struct {
	Keywords     string `json:"keywords"`
	Location     string `json:"location"`
	Page         int    `json:"page"`
	ResultOnPage int    `json:"resultonpage"`
}

// SearchJobs queries Jooble with the candidate's primary skill
func (c *JoobleClient) SearchJobs(ctx context.Context, skills []string, location string) ([]model.JobMatch, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Jooble API key not configured")
	}

	keyword := primaryKeyword(skills)
	results := c.results
	if results <= 0 {
		results = 6
	}

	jsonBody, err := json.Marshal(joobleRequest{
		Keywords:     keyword,
		Location:     location,
		Page:         1,
		ResultOnPage: results,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling jooble request: %w", err)
	}

	log.Info().Str("keywords", keyword).Str("location", location).Msg("Searching Jooble API")

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/"+c.apiKey, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating jooble request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Jooble API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading jooble response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Jooble API returned %d: %s", resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("parsing Jooble response: invalid JSON")
	}

	var matches []model.JobMatch
	gjson.GetBytes(body, "jobs").ForEach(func(_, job gjson.Result) bool {
		matches = append(matches, convertJoobleJob(job, skills))
		return true
	})
	if matches == nil {
		matches = []model.JobMatch{}
	}

	log.Info().
		Int("results", len(matches)).
		Int64("totalCount", gjson.GetBytes(body, "totalCount").Int()).
		Str("keywords", keyword).
		Msg("Jooble API search complete")

	return matches, nil
}

// convertJoobleJob maps a Jooble posting; ids arrive as numbers or strings
func convertJoobleJob(job gjson.Result, skills []string) model.JobMatch {
	id := job.Get("id").String()
	if id == "" {
		id = uuid.NewString()
	}

	title := job.Get("title").String()
	return model.JobMatch{
		ID:        id,
		Title:     title,
		Company:   orDefault(job.Get("company").String(), hiddenCompany),
		Location:  job.Get("location").String(),
		MatchRate: MatchRate(skills, title+" "+job.Get("snippet").String()),
		Link:      job.Get("link").String(),
		Source:    "jooble",
	}
}
