package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// JSearchClient wraps the JSearch API on RapidAPI
type JSearchClient struct {
	apiKey  string
	baseURL string
	results int
	client  *http.Client
}

func NewJSearchClient(apiKey string, results int) *JSearchClient {
	return &JSearchClient{
		apiKey:  apiKey,
		baseURL: "https://jsearch.p.rapidapi.com",
		results: results,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── JSearch API response types ────────────────────────

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []JSearchJob `json:"data"`
}

// JSearchJob is the raw job listing from the API
type JSearchJob struct {
	JobID          string `json:"job_id"`
	JobTitle       string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	JobCity        string `json:"job_city"`
	JobState       string `json:"job_state"`
	JobCountry     string `json:"job_country"`
	JobIsRemote    bool   `json:"job_is_remote"`
	JobDescription string `json:"job_description"`
	JobApplyLink   string `json:"job_apply_link"`
}

// buildJSearchQuery combines the top skills with the city, JSearch style
func buildJSearchQuery(skills []string, location string) string {
	top := topSkills(skills, 3)
	query := defaultKeyword
	if len(top) > 0 {
		query = strings.Join(top, " ")
	}
	if location != "" {
		query += " in " + location
	}
	return query
}

// SearchJobs queries JSearch with the top skills and location
func (c *JSearchClient) SearchJobs(ctx context.Context, skills []string, location string) ([]model.JobMatch, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("RapidAPI key not configured")
	}

	query := buildJSearchQuery(skills, location)

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "month")

	reqURL := c.baseURL + "/search?" + params.Encode()

	log.Info().Str("query", query).Msg("Searching JSearch API")

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-rapidapi-host", "jsearch.p.rapidapi.com")
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling JSearch API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JSearch API returned %d: %s", resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var result jsearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing JSearch response: %w", err)
	}

	jobs := result.Data
	if c.results > 0 && len(jobs) > c.results {
		jobs = jobs[:c.results]
	}

	matches := make([]model.JobMatch, 0, len(jobs))
	for _, j := range jobs {
		matches = append(matches, convertJSearchJob(j, skills))
	}

	log.Info().
		Int("results", len(matches)).
		Str("query", query).
		Msg("JSearch API returned results")

	return matches, nil
}

func convertJSearchJob(j JSearchJob, skills []string) model.JobMatch {
	var parts []string
	for _, p := range []string{j.JobCity, j.JobState, j.JobCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	location := strings.Join(parts, ", ")
	if j.JobIsRemote {
		location = strings.TrimPrefix(location+", Remote", ", ")
	}

	id := j.JobID
	if id == "" {
		id = uuid.NewString()
	}

	return model.JobMatch{
		ID:        id,
		Title:     j.JobTitle,
		Company:   orDefault(j.EmployerName, hiddenCompany),
		Location:  location,
		MatchRate: MatchRate(skills, j.JobTitle+" "+j.JobDescription),
		Link:      j.JobApplyLink,
		Source:    "jsearch",
	}
}
