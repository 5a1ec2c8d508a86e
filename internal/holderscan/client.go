// Package holderscan provides an HTTP client for the HolderScan API,
// the holder-analytics upstream (token info, holder lists, distribution stats).
package holderscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.holderscan.com/v0"
	DefaultTimeout = 30 * time.Second

	// MaxPageSize is the provider's hard cap on limit/page size.
	MaxPageSize = 100

	// chain is fixed: the tool only analyzes Solana tokens.
	chain = "sol"
)

// Error is returned for any non-success response from HolderScan.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("holderscan: API request failed (status %d): %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the HolderScan API.
// It is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = trimTrailingSlash(u)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a new HolderScan client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func trimTrailingSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

// get performs a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// ListTokens lists available tokens. Limit is capped at MaxPageSize.
func (c *Client) ListTokens(ctx context.Context, limit, offset int) (int, []Token, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(capLimit(limit)))
	params.Set("offset", strconv.Itoa(offset))

	var result struct {
		Total  int     `json:"total"`
		Tokens []Token `json:"tokens"`
	}
	if err := c.get(ctx, "/"+chain+"/tokens", params, &result); err != nil {
		return 0, nil, err
	}
	return result.Total, result.Tokens, nil
}

// Token retrieves basic token information.
func (c *Client) Token(ctx context.Context, tokenAddress string) (*Token, error) {
	var t Token
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TokenStats retrieves token distribution statistics (HHI, Gini, etc.).
func (c *Client) TokenStats(ctx context.Context, tokenAddress string) (*TokenStats, error) {
	var s TokenStats
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TokenPnL retrieves aggregated profit/loss statistics for a token.
func (c *Client) TokenPnL(ctx context.Context, tokenAddress string) (*TokenPnL, error) {
	var p TokenPnL
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/stats/pnl", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// WalletCategories retrieves the holder breakdown by holding-duration category.
func (c *Client) WalletCategories(ctx context.Context, tokenAddress string) (*WalletCategories, error) {
	var w WalletCategories
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/stats/wallet-categories", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// SupplyBreakdown retrieves the token supply held by each wallet category.
func (c *Client) SupplyBreakdown(ctx context.Context, tokenAddress string) (*SupplyBreakdown, error) {
	var s SupplyBreakdown
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/stats/supply-breakdown", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// HolderFilters are optional amount filters for Holders.
// A nil field means the filter is not applied.
type HolderFilters struct {
	MinAmount *float64
	MaxAmount *float64
}

// Holders retrieves a page of token holders ordered by position size.
// Limit is capped at MaxPageSize; offset is 0-based.
func (c *Client) Holders(ctx context.Context, tokenAddress string, filters HolderFilters, limit, offset int) (*HolderList, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(capLimit(limit)))
	params.Set("offset", strconv.Itoa(offset))
	if filters.MinAmount != nil {
		params.Set("min_amount", strconv.FormatFloat(*filters.MinAmount, 'f', -1, 64))
	}
	if filters.MaxAmount != nil {
		params.Set("max_amount", strconv.FormatFloat(*filters.MaxAmount, 'f', -1, 64))
	}

	var list HolderList
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/holders", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// HolderDeltas retrieves holder count changes over time periods.
func (c *Client) HolderDeltas(ctx context.Context, tokenAddress string) (*HolderDeltas, error) {
	// Upstream keys start with digits ("1hour", "7days"), so decode into a
	// raw map and move values onto the fixed struct.
	var raw map[string]*int
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/holders/deltas", nil, &raw); err != nil {
		return nil, err
	}
	return holderDeltasFromAPI(raw), nil
}

// HolderBreakdowns retrieves holder statistics organized by holding value.
func (c *Client) HolderBreakdowns(ctx context.Context, tokenAddress string) (*HolderBreakdowns, error) {
	var b HolderBreakdowns
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/holders/breakdowns", nil, &b); err != nil {
		return nil, err
	}
	if b.Categories == nil {
		b.Categories = &HolderCategories{}
	}
	return &b, nil
}

// WalletStats retrieves statistics for one wallet's position in a token.
func (c *Client) WalletStats(ctx context.Context, tokenAddress, walletAddress string) (*WalletStats, error) {
	var s WalletStats
	if err := c.get(ctx, "/"+chain+"/tokens/"+tokenAddress+"/stats/"+walletAddress, nil, &s); err != nil {
		return nil, err
	}
	if s.HolderCategory == "" {
		s.HolderCategory = "unknown"
	}
	if s.HoldingBreakdown == nil {
		s.HoldingBreakdown = &HoldingBreakdown{}
	}
	return &s, nil
}

func capLimit(limit int) int {
	if limit <= 0 || limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
