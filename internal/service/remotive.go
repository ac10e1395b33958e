package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// RemotiveClient wraps the Remotive free remote jobs API.
// No API key required. Every posting is remote, so location is ignored.
type RemotiveClient struct {
	baseURL string
	results int
	client  *http.Client
}

func NewRemotiveClient(results int) *RemotiveClient {
	return &RemotiveClient{
		baseURL: "https://remotive.com",
		results: results,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── Remotive API response types ──────────────────────

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []RemotiveJob `json:"jobs"`
}

type RemotiveJob struct {
	ID                        int      `json:"id"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	Tags                      []string `json:"tags"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	URL                       string   `json:"url"`
	Description               string   `json:"description"`
}

// SearchJobs queries Remotive with the primary skill
func (c *RemotiveClient) SearchJobs(ctx context.Context, skills []string, _ string) ([]model.JobMatch, error) {
	keyword := primaryKeyword(skills)
	limit := c.results
	if limit <= 0 {
		limit = 6
	}

	params := url.Values{}
	params.Set("search", keyword)
	params.Set("limit", strconv.Itoa(limit))

	reqURL := c.baseURL + "/api/remote-jobs?" + params.Encode()

	log.Info().
		Str("search", keyword).
		Int("limit", limit).
		Msg("Searching Remotive API")

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating remotive request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Remotive API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remotive response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Remotive API returned %d: %s",
			resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var result remotiveResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing Remotive response: %w", err)
	}

	jobs := result.Jobs
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}

	matches := make([]model.JobMatch, 0, len(jobs))
	for _, rj := range jobs {
		matches = append(matches, convertRemotiveJob(rj, skills))
	}

	log.Info().
		Int("results", len(matches)).
		Str("search", keyword).
		Msg("Remotive API search complete")

	return matches, nil
}

func convertRemotiveJob(rj RemotiveJob, skills []string) model.JobMatch {
	location := rj.CandidateRequiredLocation
	if location == "" {
		location = "Remote"
	}

	text := rj.Title + " " + rj.Description
	for _, tag := range rj.Tags {
		text += " " + tag
	}

	return model.JobMatch{
		ID:        fmt.Sprintf("remotive-%d", rj.ID),
		Title:     rj.Title,
		Company:   orDefault(rj.CompanyName, hiddenCompany),
		Location:  location,
		MatchRate: MatchRate(skills, text),
		Link:      rj.URL,
		Source:    "remotive",
	}
}
