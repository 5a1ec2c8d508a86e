package crosscheck

import (
	"context"
	"fmt"
	"log"
	"time"

	"soylana/internal/holderscan"
	"soylana/internal/solscan"
)

// Default pagination bounds and pacing.
const (
	// holderBatchSize is the fixed holder page size (provider max).
	holderBatchSize = 100

	// transferPageSize is the fixed transfer page size (provider max).
	transferPageSize = 100

	// DefaultMaxHoldersPerToken bounds holder pagination depth per token.
	DefaultMaxHoldersPerToken = 1000

	// DefaultMaxPagesPerToken bounds transfer pagination depth per token.
	DefaultMaxPagesPerToken = 50

	// DefaultPageDelay is the pause between consecutive transfer page
	// fetches. The transfer provider rate-limits aggressively; this delay
	// is the backpressure mechanism, not incidental pacing.
	DefaultPageDelay = 100 * time.Millisecond
)

// HolderGateway is the holder-snapshot provider surface the collector needs.
type HolderGateway interface {
	Token(ctx context.Context, tokenAddress string) (*holderscan.Token, error)
	Holders(ctx context.Context, tokenAddress string, filters holderscan.HolderFilters, limit, offset int) (*holderscan.HolderList, error)
}

// TransferGateway is the transfer-history provider surface the collector needs.
type TransferGateway interface {
	TokenMeta(ctx context.Context, tokenAddress string) (*solscan.TokenMeta, error)
	TokenTransfers(ctx context.Context, tokenAddress string, filters solscan.TransferFilters, page, pageSize int) ([]solscan.TokenTransfer, error)
}

// Collector turns one token descriptor into one PerTokenData by driving a
// provider gateway through pagination.
type Collector struct {
	holders    HolderGateway
	transfers  TransferGateway
	maxHolders int
	maxPages   int
	pageDelay  time.Duration
	logger     *log.Logger
}

// CollectorOptions contains configuration for creating a Collector.
type CollectorOptions struct {
	HolderGateway   HolderGateway
	TransferGateway TransferGateway

	// MaxHoldersPerToken is the default holder ceiling; 0 uses
	// DefaultMaxHoldersPerToken.
	MaxHoldersPerToken int

	// MaxPagesPerToken is the default transfer page ceiling; 0 uses
	// DefaultMaxPagesPerToken.
	MaxPagesPerToken int

	// PageDelay is the pause between transfer page fetches.
	// 0 uses DefaultPageDelay; negative disables the delay.
	PageDelay time.Duration

	Logger *log.Logger
}

// NewCollector creates a new Collector.
func NewCollector(opts CollectorOptions) *Collector {
	maxHolders := opts.MaxHoldersPerToken
	if maxHolders <= 0 {
		maxHolders = DefaultMaxHoldersPerToken
	}
	maxPages := opts.MaxPagesPerToken
	if maxPages <= 0 {
		maxPages = DefaultMaxPagesPerToken
	}
	pageDelay := opts.PageDelay
	if pageDelay == 0 {
		pageDelay = DefaultPageDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{
		holders:    opts.HolderGateway,
		transfers:  opts.TransferGateway,
		maxHolders: maxHolders,
		maxPages:   maxPages,
		pageDelay:  pageDelay,
		logger:     logger,
	}
}

// MaxHolders returns the configured default holder ceiling per token.
func (c *Collector) MaxHolders() int { return c.maxHolders }

// MaxPages returns the configured default transfer page ceiling per token.
func (c *Collector) MaxPages() int { return c.maxPages }

// CollectHolders fetches the current holder snapshot for one token.
// Pagination runs in fixed batches of 100 from offset 0 until an empty or
// short page, or until offset reaches maxHolders (0 uses the collector
// default). A failure on the first page propagates; a failure on a later
// page stops pagination and keeps the partial snapshot.
func (c *Collector) CollectHolders(ctx context.Context, tokenAddress string, maxHolders int) (*PerTokenData, error) {
	if maxHolders <= 0 {
		maxHolders = c.maxHolders
	}

	data := &PerTokenData{
		Address: tokenAddress,
		Holders: make(map[string]WalletRecord),
	}
	c.fillTokenInfo(ctx, data, false)

	for offset := 0; offset < maxHolders; offset += holderBatchSize {
		page, err := c.holders.Holders(ctx, tokenAddress, holderscan.HolderFilters{}, holderBatchSize, offset)
		if err != nil {
			if offset == 0 {
				// Nothing collected yet: the token's wallet universe is
				// undefined, so the whole aggregation must fail.
				return nil, fmt.Errorf("token %s: fetch holders: %w", tokenAddress, err)
			}
			c.logger.Printf("WARN token %s: holder page at offset %d failed, keeping %d holders: %v",
				shortAddress(tokenAddress), offset, len(data.Holders), err)
			break
		}

		// Last write wins: pages are assumed non-overlapping, but a wallet
		// seen twice keeps the latest amount/rank.
		for _, h := range page.Holders {
			data.Holders[h.Address] = WalletRecord{
				Address: h.Address,
				Amount:  h.Amount,
				Rank:    h.Rank,
			}
		}

		if len(page.Holders) < holderBatchSize {
			break
		}
	}

	data.CountFetched = len(data.Holders)
	return data, nil
}

// CollectTraders fetches the set of wallets that traded one token within its
// time window. Pages of 100 transfers are fetched from page 1 until an empty
// or short page, or until maxPages pages (0 uses the collector default) have
// been fetched, with a fixed delay between pages. Sender and receiver of
// every transfer join the set except the burn address. First-page failures
// propagate; later failures keep the partial set.
func (c *Collector) CollectTraders(ctx context.Context, query TokenQuery, maxPages int) (*PerTokenData, error) {
	if maxPages <= 0 {
		maxPages = c.maxPages
	}

	data := &PerTokenData{
		Address:  query.Address,
		Traders:  make(map[string]struct{}),
		FromTime: query.FromTime,
		ToTime:   query.ToTime,
	}
	c.fillTokenInfo(ctx, data, true)

	filters := solscan.TransferFilters{
		FromTime: query.FromTime,
		ToTime:   query.ToTime,
	}

	for page := 1; page <= maxPages; page++ {
		if page > 1 {
			if err := c.pause(ctx); err != nil {
				return nil, err
			}
		}

		transfers, err := c.transfers.TokenTransfers(ctx, query.Address, filters, page, transferPageSize)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("token %s: fetch transfers: %w", query.Address, err)
			}
			c.logger.Printf("WARN token %s: transfer page %d failed, keeping %d traders: %v",
				shortAddress(query.Address), page, len(data.Traders), err)
			break
		}

		for _, t := range transfers {
			if t.FromAddress != "" && t.FromAddress != BurnAddress {
				data.Traders[t.FromAddress] = struct{}{}
			}
			if t.ToAddress != "" && t.ToAddress != BurnAddress {
				data.Traders[t.ToAddress] = struct{}{}
			}
		}

		if len(transfers) < transferPageSize {
			break
		}
	}

	data.CountFetched = len(data.Traders)
	return data, nil
}

// fillTokenInfo sets display name and decimals, best effort. On any failure
// the name falls back to a shortened address and decimals stay 0; collection
// never aborts over metadata.
func (c *Collector) fillTokenInfo(ctx context.Context, data *PerTokenData, traderMode bool) {
	if traderMode {
		meta, err := c.transfers.TokenMeta(ctx, data.Address)
		if err == nil {
			data.Name = meta.Name
			data.Decimals = meta.Decimals
			return
		}
		c.logger.Printf("WARN token %s: token meta unavailable, using fallback: %v", shortAddress(data.Address), err)
	} else {
		tok, err := c.holders.Token(ctx, data.Address)
		if err == nil {
			data.Name = tok.Name
			data.Decimals = tok.Decimals
			return
		}
		c.logger.Printf("WARN token %s: token info unavailable, using fallback: %v", shortAddress(data.Address), err)
	}
	data.Name = shortAddress(data.Address)
	data.Decimals = 0
}

// pause sleeps for the inter-page delay, honoring cancellation.
func (c *Collector) pause(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pageDelay):
		return nil
	}
}

// shortAddress returns the first 8 characters of an address, the display
// fallback when token metadata is unavailable.
func shortAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:8]
}
