package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const pageLimit = 100

// ClientConfig represents the configuration for the Stripe API client.
type ClientConfig struct {
	APIURL     string
	SecretKey  string
	MaxRetries int           // Max consecutive rate-limit retries per page. Default: 10
	RetryDelay time.Duration // Sleep between rate-limit retries. Default: 5 seconds
	Timeout    time.Duration // Default: 30 seconds
}

// Client is a Stripe API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a new Stripe API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxRetries := config.MaxRetries
	if maxRetries == 0 {
		maxRetries = 10
	}
	retryDelay := config.RetryDelay
	if retryDelay == 0 {
		retryDelay = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    config.APIURL,
		secretKey:  config.SecretKey,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// ErrRateLimited is returned by ListInvoices when Stripe responds with HTTP 429.
var ErrRateLimited = errors.New("stripe API rate limit exceeded")

// ListInvoices fetches one page of paid invoices, expanding the nested
// customer and line-item resources inline. startingAfter is the pagination
// cursor (the last invoice ID of the previous page); empty for the first page.
func (c *Client) ListInvoices(startingAfter string) (*InvoiceList, error) {
	endpoint := fmt.Sprintf("%s/v1/invoices", c.baseURL)

	queryParams := url.Values{}
	queryParams.Set("status", "paid")
	queryParams.Set("limit", fmt.Sprintf("%d", pageLimit))
	queryParams.Add("expand[]", "data.customer")
	queryParams.Add("expand[]", "data.lines")
	if startingAfter != "" {
		queryParams.Set("starting_after", startingAfter)
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s?%s", endpoint, queryParams.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var list InvoiceList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &list, nil
}

// FetchPaidInvoices fetches all paid invoices and filters them client-side to
// those whose paid-at timestamp falls within [start, end] inclusive. Stripe
// does not support filtering by paid date server-side, so every page is
// retrieved first. Rate-limit responses are retried on the same cursor after
// a fixed delay, up to MaxRetries consecutive attempts per page; any other
// API error aborts the fetch.
func (c *Client) FetchPaidInvoices(start, end int64) ([]Invoice, error) {
	var allInvoices []Invoice
	startingAfter := ""
	retries := 0

	slog.Info("Fetching all paid Stripe invoices", "range_start", start, "range_end", end)

	for {
		list, err := c.ListInvoices(startingAfter)
		if errors.Is(err, ErrRateLimited) {
			retries++
			if retries > c.maxRetries {
				return nil, fmt.Errorf("stripe rate limit: giving up after %d retries", c.maxRetries)
			}
			slog.Warn("Stripe rate limit hit, retrying same page",
				"delay", c.retryDelay,
				"attempt", retries,
				"max_retries", c.maxRetries,
			)
			time.Sleep(c.retryDelay)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices (starting_after=%q): %w", startingAfter, err)
		}
		retries = 0

		if len(list.Data) == 0 {
			break
		}

		slog.Debug("Fetched invoice page", "count", len(list.Data))
		allInvoices = append(allInvoices, list.Data...)

		if !list.HasMore {
			break
		}

		startingAfter = list.Data[len(list.Data)-1].ID
	}

	slog.Info("Finished fetching paid invoices, filtering by paid date", "total", len(allInvoices))

	var filtered []Invoice
	for _, inv := range allInvoices {
		paidAt := inv.StatusTransitions.PaidAt
		if paidAt != nil && *paidAt >= start && *paidAt <= end {
			filtered = append(filtered, inv)
		} else {
			slog.Debug("Invoice paid outside target range, skipping", "invoice_id", inv.ID)
		}
	}

	slog.Info("Invoices paid within target range", "count", len(filtered))
	return filtered, nil
}

// parseError parses an error response from the Stripe API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return fmt.Errorf("stripe API error (status %d): %s", resp.StatusCode, string(body))
	}

	if errResp.Error.Code != "" {
		return fmt.Errorf("stripe API error: %s (%s)", errResp.Error.Message, errResp.Error.Code)
	}

	return fmt.Errorf("stripe API error: %s", errResp.Error.Message)
}
