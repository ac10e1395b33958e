package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// AdzunaClient wraps the Adzuna job search API.
// Requires app_id and app_key from developer.adzuna.com (free tier available).
type AdzunaClient struct {
	appID   string
	appKey  string
	country string
	results int
	baseURL string
	client  *http.Client
}

func NewAdzunaClient(appID, appKey, country string, results int) *AdzunaClient {
	if country == "" {
		country = "us"
	}
	return &AdzunaClient{
		appID:   appID,
		appKey:  appKey,
		country: strings.ToLower(country),
		results: results,
		baseURL: "https://api.adzuna.com",
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Enabled returns true if Adzuna API keys are configured.
func (c *AdzunaClient) Enabled() bool {
	return c.appID != "" && c.appKey != ""
}

// ── Adzuna API response types ────────────────────────

type adzunaResponse struct {
	Results []AdzunaJob `json:"results"`
	Count   int         `json:"count"`
}

type AdzunaJob struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	RedirectURL string         `json:"redirect_url"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

// SearchJobs queries Adzuna with the primary skill in the given city
func (c *AdzunaClient) SearchJobs(ctx context.Context, skills []string, location string) ([]model.JobMatch, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Adzuna API keys not configured")
	}

	keyword := primaryKeyword(skills)
	resultsPerPage := c.results
	if resultsPerPage <= 0 || resultsPerPage > 50 {
		resultsPerPage = 6
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(resultsPerPage))
	params.Set("what", keyword)
	params.Set("content-type", "application/json")
	if location != "" {
		params.Set("where", location)
	}

	reqURL := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", c.baseURL, c.country, params.Encode())

	log.Info().
		Str("keywords", keyword).
		Str("location", location).
		Str("country", c.country).
		Msg("Searching Adzuna API")

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating adzuna request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Adzuna API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading adzuna response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Adzuna API returned %d: %s",
			resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var result adzunaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing Adzuna response: %w", err)
	}

	matches := make([]model.JobMatch, 0, len(result.Results))
	for _, aj := range result.Results {
		matches = append(matches, convertAdzunaJob(aj, skills))
	}

	log.Info().
		Int("results", len(matches)).
		Int("count", result.Count).
		Str("keywords", keyword).
		Msg("Adzuna API search complete")

	return matches, nil
}

func convertAdzunaJob(aj AdzunaJob, skills []string) model.JobMatch {
	location := aj.Location.DisplayName
	if location == "" && len(aj.Location.Area) > 0 {
		location = strings.Join(aj.Location.Area, ", ")
	}

	return model.JobMatch{
		ID:        "adzuna-" + aj.ID,
		Title:     aj.Title,
		Company:   orDefault(aj.Company.DisplayName, hiddenCompany),
		Location:  location,
		MatchRate: MatchRate(skills, aj.Title+" "+aj.Description),
		Link:      aj.RedirectURL,
		Source:    "adzuna",
	}
}
