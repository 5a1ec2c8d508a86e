// Package crosscheck implements the cross-token wallet intersection engine:
// per-token wallet collection (current holders or historical traders),
// N-way set intersection with per-token enrichment, and request orchestration.
package crosscheck

// TokenQuery describes one requested token for a trader-mode cross-check.
// FromTime/ToTime are inclusive epoch-second bounds on transfer history;
// zero means unbounded.
type TokenQuery struct {
	Address  string `json:"address"`
	FromTime int64  `json:"fromTime,omitempty"`
	ToTime   int64  `json:"toTime,omitempty"`
}

// WalletRecord is one holder of a token. Amount is in raw base units;
// Rank is the provider-assigned ordinal (1 = largest holder), 0 if unknown.
type WalletRecord struct {
	Address string
	Amount  float64
	Rank    int
}

// PerTokenData is everything collected for one requested token.
// Holders is populated in holder mode, Traders in trader mode.
// CountFetched is the number of unique wallets discovered during the bounded
// pagination run; it may undercount true totals when a ceiling is hit.
type PerTokenData struct {
	Address  string
	Name     string
	Decimals int

	Holders map[string]WalletRecord
	Traders map[string]struct{}

	CountFetched int
	FromTime     int64
	ToTime       int64
}

// HolderHolding is one wallet's position in one token, holder mode.
// AdjustedAmount is RawAmount scaled down by the token's decimals.
type HolderHolding struct {
	TokenName      string  `json:"tokenName"`
	RawAmount      float64 `json:"rawAmount"`
	AdjustedAmount float64 `json:"adjustedAmount"`
	Rank           int     `json:"rank"`
}

// TraderHolding marks one wallet's trading activity in one token.
// Traded is always true for wallets in the intersection; it is enumerated
// per token so callers can see the uniformity.
type TraderHolding struct {
	TokenName string `json:"tokenName"`
	Traded    bool   `json:"traded"`
}

// HolderCommonWallet is one wallet common to all requested tokens,
// holder mode. Holdings is keyed by token address.
type HolderCommonWallet struct {
	WalletAddress string                   `json:"walletAddress"`
	Holdings      map[string]HolderHolding `json:"holdings"`
}

// TraderCommonWallet is one wallet common to all requested tokens,
// trader mode. Holdings is keyed by token address.
type TraderCommonWallet struct {
	WalletAddress string                   `json:"walletAddress"`
	Holdings      map[string]TraderHolding `json:"holdings"`
}

// TokenSummary describes one requested token in a cross-check response.
type TokenSummary struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Decimals     int    `json:"decimals"`
	CountFetched int    `json:"countFetched"`
	FromTime     int64  `json:"fromTime,omitempty"`
	ToTime       int64  `json:"toTime,omitempty"`
}

// HoldersRequest is a holder-mode cross-check request.
type HoldersRequest struct {
	Tokens []string `json:"tokens"`

	// MinUsdValue is accepted and echoed back but not applied as a filter;
	// USD filtering awaits price-feed integration.
	MinUsdValue float64 `json:"minUsdValue"`

	// MaxHoldersPerToken caps pagination depth per token.
	// Zero uses DefaultMaxHoldersPerToken.
	MaxHoldersPerToken int `json:"maxHoldersPerToken"`
}

// TradersRequest is a trader-mode cross-check request.
type TradersRequest struct {
	Tokens []TokenQuery `json:"tokens"`

	// MaxPagesPerToken caps transfer pagination depth per token.
	// Zero uses DefaultMaxPagesPerToken.
	MaxPagesPerToken int `json:"maxPagesPerToken"`
}

// HoldersQuery echoes the effective parameters of a holder-mode run.
type HoldersQuery struct {
	Mode               string   `json:"mode"`
	Tokens             []string `json:"tokens"`
	MinUsdValue        float64  `json:"minUsdValue"`
	MaxHoldersPerToken int      `json:"maxHoldersPerToken"`
}

// TradersQuery echoes the effective parameters of a trader-mode run.
type TradersQuery struct {
	Mode             string       `json:"mode"`
	Tokens           []TokenQuery `json:"tokens"`
	MaxPagesPerToken int          `json:"maxPagesPerToken"`
}

// HoldersResult is the holder-mode cross-check response.
type HoldersResult struct {
	CommonWallets []HolderCommonWallet `json:"commonWallets"`
	Tokens        []TokenSummary       `json:"tokens"`
	TotalCommon   int                  `json:"totalCommon"`
	Query         HoldersQuery         `json:"query"`
}

// TradersResult is the trader-mode cross-check response.
type TradersResult struct {
	CommonWallets []TraderCommonWallet `json:"commonWallets"`
	Tokens        []TokenSummary       `json:"tokens"`
	TotalCommon   int                  `json:"totalCommon"`
	Query         TradersQuery         `json:"query"`
}
