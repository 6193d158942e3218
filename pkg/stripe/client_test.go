package stripe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func testInvoice(id string, paidAt int64) Invoice {
	return Invoice{
		ID:                id,
		Total:             1000,
		StatusTransitions: StatusTransitions{PaidAt: int64Ptr(paidAt)},
	}
}

func writeList(t *testing.T, w http.ResponseWriter, invoices []Invoice, hasMore bool) {
	t.Helper()
	err := json.NewEncoder(w).Encode(InvoiceList{
		Object:  "list",
		Data:    invoices,
		HasMore: hasMore,
	})
	assert.NoError(t, err)
}

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		APIURL:     url,
		SecretKey:  "sk_test_123",
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
}

func TestFetchPaidInvoicesPagination(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "paid", r.URL.Query().Get("status"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.ElementsMatch(t, []string{"data.customer", "data.lines"}, r.URL.Query()["expand[]"])

		cursor := r.URL.Query().Get("starting_after")
		requests = append(requests, cursor)

		switch cursor {
		case "":
			writeList(t, w, []Invoice{testInvoice("in_1", 150), testInvoice("in_2", 160)}, true)
		case "in_2":
			writeList(t, w, []Invoice{testInvoice("in_3", 170)}, false)
		default:
			t.Errorf("unexpected cursor %q", cursor)
		}
	}))
	defer server.Close()

	invoices, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "in_2"}, requests)
	require.Len(t, invoices, 3)
	assert.Equal(t, "in_1", invoices[0].ID)
	assert.Equal(t, "in_2", invoices[1].ID)
	assert.Equal(t, "in_3", invoices[2].ID)
}

func TestFetchPaidInvoicesRateLimitRetriesSamePage(t *testing.T) {
	var requests []string
	rateLimited := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("starting_after")
		requests = append(requests, cursor)

		switch cursor {
		case "":
			writeList(t, w, []Invoice{testInvoice("in_1", 150)}, true)
		case "in_1":
			// Rate-limit the second page once; the same cursor must be retried.
			if !rateLimited {
				rateLimited = true
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error":{"type":"rate_limit_error","message":"too many requests"}}`)
				return
			}
			writeList(t, w, []Invoice{testInvoice("in_2", 160)}, false)
		}
	}))
	defer server.Close()

	invoices, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "in_1", "in_1"}, requests)
	require.Len(t, invoices, 2)
	assert.Equal(t, "in_1", invoices[0].ID)
	assert.Equal(t, "in_2", invoices[1].ID)
}

func TestFetchPaidInvoicesRateLimitBounded(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	// MaxRetries=3 means the initial attempt plus three retries.
	assert.Equal(t, 4, attempts)
}

func TestFetchPaidInvoicesAPIErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","code":"api_key_invalid","message":"Invalid API Key provided"}}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
	assert.Contains(t, err.Error(), "api_key_invalid")
}

func TestFetchPaidInvoicesNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestFetchPaidInvoicesClientSideFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoices := []Invoice{
			testInvoice("in_before", 99),
			testInvoice("in_start", 100),
			testInvoice("in_mid", 150),
			testInvoice("in_end", 200),
			testInvoice("in_after", 201),
			{ID: "in_never_paid", Total: 1000},
		}
		writeList(t, w, invoices, false)
	}))
	defer server.Close()

	invoices, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.NoError(t, err)

	// Bounds are inclusive; unpaid and out-of-range invoices are dropped.
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	assert.Equal(t, []string{"in_start", "in_mid", "in_end"}, ids)
}

func TestFetchPaidInvoicesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeList(t, w, nil, false)
	}))
	defer server.Close()

	invoices, err := newTestClient(server.URL).FetchPaidInvoices(100, 200)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}
