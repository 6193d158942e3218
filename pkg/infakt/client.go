package infakt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ClientConfig represents the configuration for the inFakt API client.
type ClientConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration // Default: 30 seconds
}

// Client is an inFakt API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new inFakt API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: config.APIURL,
		apiKey:  config.APIKey,
	}
}

// CreateInvoiceAsync submits an invoice to the asynchronous creation endpoint
// and returns the task reference for the queued job. Any non-2xx response,
// transport failure, or undecodable response body is returned as an error;
// there are no retries at this layer.
func (c *Client) CreateInvoiceAsync(invoice *Invoice) (*TaskResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v3/async/invoices.json", c.baseURL)

	payload, err := json.Marshal(CreateInvoiceRequest{Invoice: invoice})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-inFakt-ApiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}

	var taskResp TaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.Info("Submitted invoice to inFakt async queue",
		"task_reference", taskResp.InvoiceTaskReferenceNumber,
	)
	return &taskResp, nil
}

// parseError parses an error response from the inFakt API, falling back to
// the raw body when it is not valid JSON.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("inFakt API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || (errResp.Error == "" && len(errResp.Errors) == 0) {
		return fmt.Errorf("inFakt API error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(errResp.Errors) > 0 {
		detail, _ := json.Marshal(errResp.Errors)
		return fmt.Errorf("inFakt API error (status %d): %s %s", resp.StatusCode, errResp.Error, string(detail))
	}

	return fmt.Errorf("inFakt API error (status %d): %s", resp.StatusCode, errResp.Error)
}
