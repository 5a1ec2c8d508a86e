package crosscheck

import (
	"context"
	"log"

	"github.com/mr-tron/base58"
)

// Token list bounds for one cross-check request.
const (
	MinTokens = 2
	MaxTokens = 10
)

// Orchestrator coordinates the Collector and the intersection engine across
// a requested token list. Collection runs strictly sequentially, one token
// at a time, to respect provider rate limits and keep per-token logs ordered.
type Orchestrator struct {
	collector *Collector
	logger    *log.Logger
}

// OrchestratorOptions contains configuration for creating an Orchestrator.
type OrchestratorOptions struct {
	Collector *Collector
	Logger    *log.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		collector: opts.Collector,
		logger:    logger,
	}
}

// CrossCheckByHolders finds the wallets currently holding every requested
// token, enriched with per-token amounts and ranks.
func (o *Orchestrator) CrossCheckByHolders(ctx context.Context, req HoldersRequest) (*HoldersResult, error) {
	if err := checkTokenCount(len(req.Tokens)); err != nil {
		return nil, err
	}

	addrs := dedupeAddresses(req.Tokens)
	if len(addrs) < MinTokens {
		return nil, validationErrorf("at least %d distinct token addresses are required, got %d", MinTokens, len(addrs))
	}
	for _, addr := range addrs {
		if !validAddress(addr) {
			return nil, validationErrorf("invalid token address: %q", addr)
		}
	}

	maxHolders := req.MaxHoldersPerToken
	if maxHolders <= 0 {
		maxHolders = o.collector.MaxHolders()
	}

	perToken := make([]*PerTokenData, 0, len(addrs))
	for _, addr := range addrs {
		data, err := o.collector.CollectHolders(ctx, addr, maxHolders)
		if err != nil {
			return nil, err
		}
		o.logger.Printf("token %s: collected %d holders", shortAddress(addr), data.CountFetched)
		perToken = append(perToken, data)
	}

	common := IntersectHolders(perToken)
	return &HoldersResult{
		CommonWallets: common,
		Tokens:        summarize(perToken),
		TotalCommon:   len(common),
		Query: HoldersQuery{
			Mode:               "holders",
			Tokens:             addrs,
			MinUsdValue:        req.MinUsdValue,
			MaxHoldersPerToken: maxHolders,
		},
	}, nil
}

// CrossCheckByTraders finds the wallets that traded every requested token
// within its time window.
func (o *Orchestrator) CrossCheckByTraders(ctx context.Context, req TradersRequest) (*TradersResult, error) {
	if err := checkTokenCount(len(req.Tokens)); err != nil {
		return nil, err
	}

	queries := dedupeQueries(req.Tokens)
	if len(queries) < MinTokens {
		return nil, validationErrorf("at least %d distinct token addresses are required, got %d", MinTokens, len(queries))
	}
	for _, q := range queries {
		if !validAddress(q.Address) {
			return nil, validationErrorf("invalid token address: %q", q.Address)
		}
		if q.FromTime > 0 && q.ToTime > 0 && q.FromTime > q.ToTime {
			return nil, validationErrorf("token %s: fromTime %d is after toTime %d", q.Address, q.FromTime, q.ToTime)
		}
	}

	maxPages := req.MaxPagesPerToken
	if maxPages <= 0 {
		maxPages = o.collector.MaxPages()
	}

	perToken := make([]*PerTokenData, 0, len(queries))
	for _, q := range queries {
		data, err := o.collector.CollectTraders(ctx, q, maxPages)
		if err != nil {
			return nil, err
		}
		o.logger.Printf("token %s: collected %d traders", shortAddress(q.Address), data.CountFetched)
		perToken = append(perToken, data)
	}

	common := IntersectTraders(perToken)
	return &TradersResult{
		CommonWallets: common,
		Tokens:        summarize(perToken),
		TotalCommon:   len(common),
		Query: TradersQuery{
			Mode:             "traders",
			Tokens:           queries,
			MaxPagesPerToken: maxPages,
		},
	}, nil
}

func checkTokenCount(n int) error {
	if n < MinTokens {
		return validationErrorf("at least %d token addresses are required, got %d", MinTokens, n)
	}
	if n > MaxTokens {
		return validationErrorf("at most %d token addresses are allowed, got %d", MaxTokens, n)
	}
	return nil
}

// dedupeAddresses removes duplicate addresses preserving first-seen order.
// Matching is exact: addresses are never normalized.
func dedupeAddresses(addrs []string) []string {
	seen := make(map[string]bool, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// dedupeQueries removes duplicate token addresses preserving first-seen
// order; the first descriptor's time range wins.
func dedupeQueries(queries []TokenQuery) []TokenQuery {
	seen := make(map[string]bool, len(queries))
	out := make([]TokenQuery, 0, len(queries))
	for _, q := range queries {
		if seen[q.Address] {
			continue
		}
		seen[q.Address] = true
		out = append(out, q)
	}
	return out
}

// validAddress reports whether s is a base58-encoded 32-byte Solana address.
func validAddress(s string) bool {
	decoded, err := base58.Decode(s)
	return err == nil && len(decoded) == 32
}

func summarize(perToken []*PerTokenData) []TokenSummary {
	summaries := make([]TokenSummary, 0, len(perToken))
	for _, t := range perToken {
		summaries = append(summaries, TokenSummary{
			Address:      t.Address,
			Name:         t.Name,
			Decimals:     t.Decimals,
			CountFetched: t.CountFetched,
			FromTime:     t.FromTime,
			ToTime:       t.ToTime,
		})
	}
	return summaries
}
