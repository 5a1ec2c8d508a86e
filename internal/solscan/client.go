// Package solscan provides an HTTP client for the Solscan Pro API v2,
// the transfer-history upstream (token transfers, token meta, accounts).
package solscan

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
	DefaultBaseURL = "https://pro-api.solscan.io/v2.0"
	DefaultTimeout = 30 * time.Second

	// MaxPageSize is the provider's hard cap on page_size.
	MaxPageSize = 100
)

// Error is returned for any non-success response from Solscan.
// StatusCode is 0 when the HTTP request succeeded but the response
// envelope reported success=false.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("solscan: API request failed (status %d): %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the Solscan Pro API.
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
		for len(u) > 0 && u[len(u)-1] == '/' {
			u = u[:len(u)-1]
		}
		c.baseURL = u
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

// New creates a new Solscan client.
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

// envelope is the Pro API v2 response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

// get performs a GET request, unwraps the success/data envelope and
// decodes data into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("token", c.apiKey)
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

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = string(env.Errors)
		}
		return &Error{Message: msg}
	}

	if result != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return nil
}

// TokenMeta retrieves token metadata (name, symbol, decimals, supply).
func (c *Client) TokenMeta(ctx context.Context, tokenAddress string) (*TokenMeta, error) {
	params := url.Values{}
	params.Set("address", tokenAddress)

	var meta TokenMeta
	if err := c.get(ctx, "/token/meta", params, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// TransferFilters are optional time bounds for TokenTransfers.
// Zero means the bound is not applied. Bounds are inclusive epoch seconds.
type TransferFilters struct {
	FromTime int64
	ToTime   int64
}

// TokenTransfers retrieves one page of a token's transfer history.
// Page is 1-based; pageSize is capped at MaxPageSize. Time bounds are passed
// as the provider's block_time[] array parameter.
func (c *Client) TokenTransfers(ctx context.Context, tokenAddress string, filters TransferFilters, page, pageSize int) ([]TokenTransfer, error) {
	params := url.Values{}
	params.Set("address", tokenAddress)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(capPageSize(pageSize)))
	if filters.FromTime > 0 {
		params.Add("block_time[]", strconv.FormatInt(filters.FromTime, 10))
	}
	if filters.ToTime > 0 {
		params.Add("block_time[]", strconv.FormatInt(filters.ToTime, 10))
	}

	var transfers []TokenTransfer
	if err := c.get(ctx, "/token/transfer", params, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

// TokenHolders retrieves one page of a token's holders.
// Page is 1-based; pageSize is capped at MaxPageSize.
func (c *Client) TokenHolders(ctx context.Context, tokenAddress string, page, pageSize int) (*TokenHolderPage, error) {
	params := url.Values{}
	params.Set("address", tokenAddress)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(capPageSize(pageSize)))

	var holders TokenHolderPage
	if err := c.get(ctx, "/token/holders", params, &holders); err != nil {
		return nil, err
	}
	return &holders, nil
}

// AccountDetail retrieves account/wallet details.
func (c *Client) AccountDetail(ctx context.Context, address string) (*AccountDetail, error) {
	params := url.Values{}
	params.Set("address", address)

	var detail AccountDetail
	if err := c.get(ctx, "/account/detail", params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AccountTransfers retrieves one page of an account's transfer history,
// optionally filtered to a single token.
func (c *Client) AccountTransfers(ctx context.Context, address, tokenAddress string, page, pageSize int) ([]TokenTransfer, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(capPageSize(pageSize)))
	if tokenAddress != "" {
		params.Set("token", tokenAddress)
	}

	var transfers []TokenTransfer
	if err := c.get(ctx, "/account/transfer", params, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

// TokenAccounts retrieves all token accounts held by a wallet.
func (c *Client) TokenAccounts(ctx context.Context, address string) ([]TokenAccount, error) {
	params := url.Values{}
	params.Set("address", address)

	var accounts []TokenAccount
	if err := c.get(ctx, "/account/token-accounts", params, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// TokenPrice retrieves current price data for a token.
func (c *Client) TokenPrice(ctx context.Context, tokenAddress string) ([]TokenPrice, error) {
	params := url.Values{}
	params.Set("address", tokenAddress)

	var prices []TokenPrice
	if err := c.get(ctx, "/token/price", params, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func capPageSize(pageSize int) int {
	if pageSize <= 0 || pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}
