package jira

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 16 << 20

// Config holds configuration for creating a Jira API Client.
type Config struct {
	// BaseURL is the root URL of the Jira site, without the /rest suffix.
	// Must use http or https.
	BaseURL string

	// User and APIKey are sent as Basic Authentication on every request.
	User   string
	APIKey string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a minimal Jira REST API client.
type Client struct {
	baseURL    string
	user       string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Jira API client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("jira: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("jira: invalid base URL %q: %w", baseURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("jira: base URL must use http or https (got %q)", baseURL)
	}

	if config.User == "" || config.APIKey == "" {
		return nil, fmt.Errorf("jira: user and API key are required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		user:       config.User,
		apiKey:     config.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do executes an authenticated request against path (relative to the base
// URL). requestBody, when not nil, is JSON-encoded. On a non-2xx response it
// returns an *APIError carrying the response body.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("jira: encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(encoded)
	}

	endpoint := client.baseURL + path

	request, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("jira: creating request: %w", err)
	}

	request.SetBasicAuth(client.user, client.apiKey)
	request.Header.Set("Accept", "application/json")

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.logger.Debug("jira request", "method", method, "path", path)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("jira: %s %s: %w", method, endpoint, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("jira: reading response body: %w", err)
	}

	client.logger.Debug("jira response", "method", method, "path", path, "status", response.StatusCode)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, body)
	}

	return body, nil
}

// get decodes the JSON response of a GET request into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("jira: decoding response: %w", err)
	}

	return nil
}

// post sends requestBody and decodes the JSON response into result.
func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("jira: decoding response: %w", err)
	}

	return nil
}
