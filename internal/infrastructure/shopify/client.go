package shopify

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

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

const apiVersion = "2025-07"

// Client fetches records from the upstream admin REST API. One client serves
// every tenant; credentials are passed per call.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

var _ ports.StoreGateway = (*Client)(nil)

// NewClient creates a new upstream API client. The limiter keeps requests
// under the platform's per-store call budget of 2 requests per second.
func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 35 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		logger:     logger,
	}
}

// FetchProducts returns one page of products and the cursor for the next.
func (c *Client) FetchProducts(ctx context.Context, creds domain.TenantCredentials, opts ports.FetchOptions) ([]domain.UpstreamProduct, string, error) {
	var envelope struct {
		Products []domain.UpstreamProduct `json:"products"`
	}
	next, err := c.fetchPage(ctx, creds, domain.ResourceProducts, opts, nil, &envelope)
	if err != nil {
		return nil, "", err
	}
	return envelope.Products, next, nil
}

// FetchCustomers returns one page of customers and the cursor for the next.
func (c *Client) FetchCustomers(ctx context.Context, creds domain.TenantCredentials, opts ports.FetchOptions) ([]domain.UpstreamCustomer, string, error) {
	var envelope struct {
		Customers []domain.UpstreamCustomer `json:"customers"`
	}
	next, err := c.fetchPage(ctx, creds, domain.ResourceCustomers, opts, nil, &envelope)
	if err != nil {
		return nil, "", err
	}
	return envelope.Customers, next, nil
}

// FetchOrders returns one page of orders and the cursor for the next. Orders
// of every status are requested; filtering is not the ingestion layer's job.
func (c *Client) FetchOrders(ctx context.Context, creds domain.TenantCredentials, opts ports.FetchOptions) ([]domain.UpstreamOrder, string, error) {
	var envelope struct {
		Orders []domain.UpstreamOrder `json:"orders"`
	}
	extra := url.Values{"status": {"any"}}
	next, err := c.fetchPage(ctx, creds, domain.ResourceOrders, opts, extra, &envelope)
	if err != nil {
		return nil, "", err
	}
	return envelope.Orders, next, nil
}

// fetchPage performs one paginated GET and decodes the body into out. It
// returns the cursor of the following page, or "" when the listing is
// exhausted.
func (c *Client) fetchPage(ctx context.Context, creds domain.TenantCredentials, resource domain.ResourceType, opts ports.FetchOptions, extra url.Values, out any) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &domain.UpstreamUnreachableError{Resource: resource, Err: err}
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(opts.PageSize))
	if opts.Cursor != "" {
		// A page_info request rejects any filter params, so the cursor
		// travels alone with the limit.
		query.Set("page_info", opts.Cursor)
	} else {
		for key, values := range extra {
			for _, v := range values {
				query.Add(key, v)
			}
		}
	}

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/%s.json?%s", creds.StoreDomain, apiVersion, resource, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &domain.UpstreamUnreachableError{Resource: resource, Err: err}
	}
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamUnreachableError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn().
			Str("tenantId", creds.TenantID).
			Str("resource", string(resource)).
			Int("status", resp.StatusCode).
			Msg("Upstream returned non-success status")
		return "", &domain.UpstreamUnavailableError{Resource: resource, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamUnreachableError{Resource: resource, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return "", &domain.ValidationError{Resource: resource, Field: "body", Reason: fmt.Sprintf("malformed response: %v", err)}
	}

	return nextPageCursor(resp.Header.Get("Link")), nil
}

// nextPageCursor extracts the page_info token of the rel="next" link from a
// Link header, or "" when there is no next page.
func nextPageCursor(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}
		raw := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return u.Query().Get("page_info")
	}
	return ""
}
