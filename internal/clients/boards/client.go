package boards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

type getJobsResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches raw listings from the upstream job boards API. Records come
// back undecoded so that one malformed element cannot fail the whole batch.
type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetJobs(parameters SearchParameters) ([]json.RawMessage, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := c.baseURL + "/jobs"
	if params := parameters.ToUrlParams(); len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	body, err := c.sendRequest("GET", apiURL, nil)
	if err != nil {
		return nil, err
	}

	var jobsResponse getJobsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobsResponse); err == nil && jobsResponse.Jobs != nil {
		return jobsResponse.Jobs, nil
	}

	// some boards return a bare array instead of a wrapper object
	var jobs []json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return jobs, nil
}

func (c *Client) sendRequest(method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(context.Background())
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
