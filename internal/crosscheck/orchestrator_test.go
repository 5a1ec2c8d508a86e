package crosscheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soylana/internal/holderscan"
	"soylana/internal/solscan"
)

// Well-known mint addresses: base58, 32 bytes.
const (
	mintWSOL = "So11111111111111111111111111111111111111112"
	mintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	mintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

func newTestOrchestrator(hg HolderGateway, tg TransferGateway) *Orchestrator {
	return NewOrchestrator(OrchestratorOptions{
		Collector: newTestCollector(hg, tg),
		Logger:    testLogger(),
	})
}

func TestCrossCheckByHolders_TooFewTokens(t *testing.T) {
	hg := &stubHolderGateway{}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	_, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{Tokens: []string{mintWSOL}})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hg.calls, "validation failures must not reach the network")
}

func TestCrossCheckByHolders_TooManyTokens(t *testing.T) {
	tokens := make([]string, MaxTokens+1)
	for i := range tokens {
		tokens[i] = mintWSOL
	}
	hg := &stubHolderGateway{}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	_, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{Tokens: tokens})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hg.calls)
}

func TestCrossCheckByHolders_InvalidAddress(t *testing.T) {
	hg := &stubHolderGateway{}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	_, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{
		Tokens: []string{mintWSOL, "not-a-mint-address"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "invalid token address")
	assert.Zero(t, hg.calls)
}

func TestCrossCheckByHolders_DeduplicatesPreservingOrder(t *testing.T) {
	hg := &stubHolderGateway{
		tokens: map[string]*holderscan.Token{
			mintUSDC: {Name: "USDC", Decimals: 6},
			mintWSOL: {Name: "Wrapped SOL", Decimals: 9},
		},
		pages: map[string]map[int][]holderscan.Holder{
			mintUSDC: {0: {{Address: "X", Amount: 1, Rank: 1}}},
			mintWSOL: {0: {{Address: "X", Amount: 1, Rank: 1}}},
		},
	}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	result, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{
		Tokens: []string{mintUSDC, mintWSOL, mintUSDC, mintWSOL},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{mintUSDC, mintWSOL}, result.Query.Tokens)
	assert.Len(t, result.Tokens, 2)
	assert.Equal(t, 2, hg.calls, "one page fetch per distinct token")
}

func TestCrossCheckByHolders_DuplicatesCollapseBelowMinimum(t *testing.T) {
	hg := &stubHolderGateway{}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	_, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{
		Tokens: []string{mintWSOL, mintWSOL},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hg.calls)
}

func TestCrossCheckByHolders_EndToEnd(t *testing.T) {
	hg := &stubHolderGateway{
		tokens: map[string]*holderscan.Token{
			mintUSDC: {Name: "Token A", Decimals: 0},
			mintWSOL: {Name: "Token B", Decimals: 0},
		},
		pages: map[string]map[int][]holderscan.Holder{
			mintUSDC: {0: {
				{Address: "X", Amount: 100, Rank: 1},
				{Address: "Y", Amount: 50, Rank: 2},
			}},
			mintWSOL: {0: {
				{Address: "X", Amount: 10, Rank: 3},
				{Address: "Z", Amount: 20, Rank: 1},
			}},
		},
	}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	result, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{
		Tokens:      []string{mintUSDC, mintWSOL},
		MinUsdValue: 25,
	})
	require.NoError(t, err)

	require.Len(t, result.CommonWallets, 1)
	assert.Equal(t, 1, result.TotalCommon)

	x := result.CommonWallets[0]
	assert.Equal(t, "X", x.WalletAddress)
	require.Len(t, x.Holdings, 2)
	assert.Equal(t, float64(100), x.Holdings[mintUSDC].RawAmount)
	assert.Equal(t, float64(10), x.Holdings[mintWSOL].RawAmount)

	// minUsdValue is echoed but never applied as a filter.
	assert.Equal(t, float64(25), result.Query.MinUsdValue)
	assert.Equal(t, "holders", result.Query.Mode)
	assert.Equal(t, DefaultMaxHoldersPerToken, result.Query.MaxHoldersPerToken)

	require.Len(t, result.Tokens, 2)
	assert.Equal(t, "Token A", result.Tokens[0].Name)
	assert.Equal(t, 2, result.Tokens[0].CountFetched)
}

func TestCrossCheckByHolders_UpstreamErrorAborts(t *testing.T) {
	upstream := &holderscan.Error{StatusCode: 502, Message: "bad gateway"}
	hg := &stubHolderGateway{
		tokens: map[string]*holderscan.Token{
			mintUSDC: {Name: "A"},
			mintWSOL: {Name: "B"},
		},
		pages: map[string]map[int][]holderscan.Holder{
			mintUSDC: {0: {{Address: "X", Amount: 1, Rank: 1}}},
		},
		pageErrs: map[string]map[int]error{
			mintWSOL: {0: upstream},
		},
	}
	o := newTestOrchestrator(hg, &stubTransferGateway{})

	_, err := o.CrossCheckByHolders(context.Background(), HoldersRequest{
		Tokens: []string{mintUSDC, mintWSOL},
	})

	var hsErr *holderscan.Error
	require.ErrorAs(t, err, &hsErr)
	assert.Equal(t, 502, hsErr.StatusCode)
}

func TestCrossCheckByTraders_EndToEnd(t *testing.T) {
	tg := &stubTransferGateway{
		metas: map[string]*solscan.TokenMeta{
			mintUSDC: {Name: "Token A", Decimals: 6},
			mintWSOL: {Name: "Token B", Decimals: 9},
		},
		pages: map[string]map[int][]solscan.TokenTransfer{
			mintUSDC: {1: {
				{FromAddress: "Bob", ToAddress: "Alice"},
				{FromAddress: "Carol", ToAddress: BurnAddress},
			}},
			mintWSOL: {1: {
				{FromAddress: "Alice", ToAddress: "Bob"},
				{FromAddress: "Dave", ToAddress: "Eve"},
			}},
		},
	}
	o := newTestOrchestrator(&stubHolderGateway{}, tg)

	result, err := o.CrossCheckByTraders(context.Background(), TradersRequest{
		Tokens: []TokenQuery{
			{Address: mintUSDC, FromTime: 1700000000, ToTime: 1700086400},
			{Address: mintWSOL},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.CommonWallets, 2)
	assert.Equal(t, 2, result.TotalCommon)
	// Lexicographic order.
	assert.Equal(t, "Alice", result.CommonWallets[0].WalletAddress)
	assert.Equal(t, "Bob", result.CommonWallets[1].WalletAddress)
	assert.True(t, result.CommonWallets[0].Holdings[mintUSDC].Traded)
	assert.True(t, result.CommonWallets[0].Holdings[mintWSOL].Traded)

	assert.Equal(t, "traders", result.Query.Mode)
	assert.Equal(t, DefaultMaxPagesPerToken, result.Query.MaxPagesPerToken)

	require.Len(t, result.Tokens, 2)
	assert.Equal(t, int64(1700000000), result.Tokens[0].FromTime)
	assert.Equal(t, int64(1700086400), result.Tokens[0].ToTime)
	assert.Equal(t, int64(0), result.Tokens[1].FromTime)
}

func TestCrossCheckByTraders_InvalidTimeRange(t *testing.T) {
	tg := &stubTransferGateway{}
	o := newTestOrchestrator(&stubHolderGateway{}, tg)

	_, err := o.CrossCheckByTraders(context.Background(), TradersRequest{
		Tokens: []TokenQuery{
			{Address: mintUSDC, FromTime: 200, ToTime: 100},
			{Address: mintWSOL},
		},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, tg.calls)
}

func TestCrossCheckByTraders_UpstreamErrorAborts(t *testing.T) {
	tg := &stubTransferGateway{
		metas: map[string]*solscan.TokenMeta{
			mintUSDC: {Name: "A"},
			mintWSOL: {Name: "B"},
		},
		pages: map[string]map[int][]solscan.TokenTransfer{
			mintUSDC: {1: {{FromAddress: "w1", ToAddress: "w2"}}},
		},
		pageErrs: map[string]map[int]error{
			mintWSOL: {1: &solscan.Error{StatusCode: 500, Message: "boom"}},
		},
	}
	o := newTestOrchestrator(&stubHolderGateway{}, tg)

	_, err := o.CrossCheckByTraders(context.Background(), TradersRequest{
		Tokens: []TokenQuery{{Address: mintUSDC}, {Address: mintWSOL}},
	})

	var ssErr *solscan.Error
	require.ErrorAs(t, err, &ssErr)
	assert.Equal(t, 500, ssErr.StatusCode)
}

func TestValidAddress(t *testing.T) {
	assert.True(t, validAddress(mintWSOL))
	assert.True(t, validAddress(mintUSDC))
	assert.True(t, validAddress(mintUSDT))
	assert.True(t, validAddress(BurnAddress))
	assert.False(t, validAddress(""))
	assert.False(t, validAddress("0OIl")) // not base58
	assert.False(t, validAddress("abc")) // too short
}
