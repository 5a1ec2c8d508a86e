package crosscheck

import (
	"math"
	"sort"
)

// IntersectHolders computes the wallets present in every token's holder map
// and builds per-token holdings for each. Results are ordered ascending by
// the mean of each wallet's positive ranks; wallets with no positive rank in
// any token sort last. Equal keys tie-break by wallet address so output is
// fully deterministic.
func IntersectHolders(tokens []*PerTokenData) []HolderCommonWallet {
	if len(tokens) == 0 {
		return []HolderCommonWallet{}
	}

	common := make([]HolderCommonWallet, 0)
	for addr := range tokens[0].Holders {
		if !heldByAll(addr, tokens[1:]) {
			continue
		}

		holdings := make(map[string]HolderHolding, len(tokens))
		for _, t := range tokens {
			rec := t.Holders[addr]
			holdings[t.Address] = HolderHolding{
				TokenName:      t.Name,
				RawAmount:      rec.Amount,
				AdjustedAmount: adjustAmount(rec.Amount, t.Decimals),
				Rank:           rec.Rank,
			}
		}
		common = append(common, HolderCommonWallet{WalletAddress: addr, Holdings: holdings})
	}

	sort.Slice(common, func(i, j int) bool {
		ri := meanPositiveRank(common[i].Holdings)
		rj := meanPositiveRank(common[j].Holdings)
		if ri != rj {
			return ri < rj
		}
		return common[i].WalletAddress < common[j].WalletAddress
	})
	return common
}

// IntersectTraders computes the wallets present in every token's trader set.
// Every holding carries Traded=true by construction; results are ordered by
// wallet address ascending (trader mode has no magnitude signal to rank by).
func IntersectTraders(tokens []*PerTokenData) []TraderCommonWallet {
	if len(tokens) == 0 {
		return []TraderCommonWallet{}
	}

	common := make([]TraderCommonWallet, 0)
	for addr := range tokens[0].Traders {
		if !tradedInAll(addr, tokens[1:]) {
			continue
		}

		holdings := make(map[string]TraderHolding, len(tokens))
		for _, t := range tokens {
			holdings[t.Address] = TraderHolding{TokenName: t.Name, Traded: true}
		}
		common = append(common, TraderCommonWallet{WalletAddress: addr, Holdings: holdings})
	}

	sort.Slice(common, func(i, j int) bool {
		return common[i].WalletAddress < common[j].WalletAddress
	})
	return common
}

func heldByAll(addr string, tokens []*PerTokenData) bool {
	for _, t := range tokens {
		if _, ok := t.Holders[addr]; !ok {
			return false
		}
	}
	return true
}

func tradedInAll(addr string, tokens []*PerTokenData) bool {
	for _, t := range tokens {
		if _, ok := t.Traders[addr]; !ok {
			return false
		}
	}
	return true
}

// adjustAmount converts a raw base-unit amount to a human-readable amount.
// Tokens with unknown decimals (0) pass through unscaled.
func adjustAmount(raw float64, decimals int) float64 {
	if decimals > 0 {
		return raw / math.Pow(10, float64(decimals))
	}
	return raw
}

// meanPositiveRank averages the ranks greater than zero across a wallet's
// holdings. Rank approximates holding magnitude, so a lower mean sorts
// first. +Inf is the sentinel for "no valid rank anywhere".
func meanPositiveRank(holdings map[string]HolderHolding) float64 {
	sum := 0.0
	n := 0
	for _, h := range holdings {
		if h.Rank > 0 {
			sum += float64(h.Rank)
			n++
		}
	}
	if n == 0 {
		return math.Inf(1)
	}
	return sum / float64(n)
}
