package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/models"
)

const (
	// numPages is the fixed page budget per search.
	numPages = 2
	page     = 1
)

// Client queries the JSearch aggregator API for job listings and normalizes
// the response into job rows. Each FetchJobs call is exactly one live
// request, there is no cache and no retry.
type Client struct {
	apiKey  string
	apiHost string
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func NewClient(cfg config.JSearch, logger *logger.Logger) *Client {
	return &Client{
		apiKey:  cfg.Key,
		apiHost: cfg.Host,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:  logger,
	}
}

// searchResponse mirrors the top-level JSearch JSON response.
type searchResponse struct {
	Data []searchJob `json:"data"`
}

// searchJob mirrors a single listing as returned by the aggregator.
type searchJob struct {
	JobTitle               string        `json:"job_title"`
	EmployerName           string        `json:"employer_name"`
	JobCity                string        `json:"job_city"`
	JobState               string        `json:"job_state"`
	JobCountry             string        `json:"job_country"`
	JobIsRemote            bool          `json:"job_is_remote"`
	JobEmploymentType      string        `json:"job_employment_type"`
	JobMinSalary           *float64      `json:"job_min_salary"`
	JobMaxSalary           *float64      `json:"job_max_salary"`
	JobSalaryCurrency      string        `json:"job_salary_currency"`
	JobSalary              *float64      `json:"job_salary"`
	JobPostedAtDatetimeUTC string        `json:"job_posted_at_datetime_utc"`
	JobDescription         string        `json:"job_description"`
	JobApplyLink           string        `json:"job_apply_link"`
	JobGoogleLink          string        `json:"job_google_link"`
	JobHighlights          jobHighlights `json:"job_highlights"`
}

type jobHighlights struct {
	Benefits []string `json:"Benefits"`
}

// FetchJobs issues one search request for the given role and location and
// returns the normalized listings. Transport failures and non-success
// statuses are returned as errors; the caller decides whether to degrade to
// an empty result set.
func (c *Client) FetchJobs(ctx context.Context, role, location string) ([]models.Job, error) {
	endpoint := fmt.Sprintf("%s/search", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)

	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf("%s in %s", role, location))
	query.Set("page", strconv.Itoa(page))
	query.Set("num_pages", strconv.Itoa(numPages))
	req.URL.RawQuery = query.Encode()

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var response searchResponse

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	jobs := make([]models.Job, 0, len(response.Data))

	for _, listing := range response.Data {
		jobs = append(jobs, normalize(listing))
	}

	c.logger.Info("fetched jobs from aggregator",
		"role", role,
		"location", location,
		"count", len(jobs))

	return jobs, nil
}
