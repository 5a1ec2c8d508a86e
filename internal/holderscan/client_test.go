package holderscan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Token(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("expected x-api-key header test-key, got %q", got)
		}
		if r.URL.Path != "/sol/tokens/mint123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(Token{
			Address:  "mint123",
			Name:     "Test Token",
			Ticker:   "TEST",
			Network:  "sol",
			Decimals: 6,
			Supply:   "1000000000",
		})
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	token, err := client.Token(context.Background(), "mint123")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	if token.Name != "Test Token" {
		t.Errorf("expected name Test Token, got %q", token.Name)
	}
	if token.Decimals != 6 {
		t.Errorf("expected decimals 6, got %d", token.Decimals)
	}
}

func TestClient_Holders_Params(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("limit"); got != "100" {
			t.Errorf("expected limit 100, got %q", got)
		}
		if got := q.Get("offset"); got != "200" {
			t.Errorf("expected offset 200, got %q", got)
		}
		if got := q.Get("min_amount"); got != "5" {
			t.Errorf("expected min_amount 5, got %q", got)
		}
		if q.Has("max_amount") {
			t.Error("max_amount must be omitted when unset")
		}

		json.NewEncoder(w).Encode(HolderList{
			HolderCount: 2,
			Total:       2,
			Holders: []Holder{
				{Address: "w1", Amount: 100, Rank: 1},
				{Address: "w2", Amount: 50, Rank: 2},
			},
		})
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	minAmount := 5.0
	list, err := client.Holders(context.Background(), "mint123", HolderFilters{MinAmount: &minAmount}, 250, 200)
	if err != nil {
		t.Fatalf("Holders: %v", err)
	}

	if len(list.Holders) != 2 {
		t.Fatalf("expected 2 holders, got %d", len(list.Holders))
	}
	if list.Holders[0].Address != "w1" || list.Holders[0].Rank != 1 {
		t.Errorf("unexpected first holder: %+v", list.Holders[0])
	}
}

func TestClient_ErrorNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	_, err := client.Token(context.Background(), "mint123")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.StatusCode)
	}
}

func TestClient_HolderDeltas_KeyMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"1hour": 5, "1day": -12, "7days": 40, "30days": null}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	deltas, err := client.HolderDeltas(context.Background(), "mint123")
	if err != nil {
		t.Fatalf("HolderDeltas: %v", err)
	}

	if deltas.Hour1 != 5 {
		t.Errorf("expected 1hour 5, got %d", deltas.Hour1)
	}
	if deltas.Day1 != -12 {
		t.Errorf("expected 1day -12, got %d", deltas.Day1)
	}
	if deltas.Days7 != 40 {
		t.Errorf("expected 7days 40, got %d", deltas.Days7)
	}
	if deltas.Days30 != 0 {
		t.Errorf("expected null 30days to default to 0, got %d", deltas.Days30)
	}
}

func TestClient_WalletStats_Defaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sol/tokens/mint123/stats/wallet456" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"amount": 1500, "holding_breakdown": null}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	stats, err := client.WalletStats(context.Background(), "mint123", "wallet456")
	if err != nil {
		t.Fatalf("WalletStats: %v", err)
	}

	if stats.Amount != 1500 {
		t.Errorf("expected amount 1500, got %v", stats.Amount)
	}
	if stats.HolderCategory != "unknown" {
		t.Errorf("expected holder category to default to unknown, got %q", stats.HolderCategory)
	}
	if stats.HoldingBreakdown == nil {
		t.Fatal("expected holding breakdown to default to zeros, got nil")
	}
	if stats.HoldingBreakdown.Diamond != 0 {
		t.Errorf("expected zeroed breakdown, got %+v", stats.HoldingBreakdown)
	}
}

func TestClient_ListTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sol/tokens" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("expected limit 50, got %q", got)
		}
		w.Write([]byte(`{"total": 2, "tokens": [{"address":"a","name":"A"},{"address":"b","name":"B"}]}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	total, tokens, err := client.ListTokens(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if total != 2 || len(tokens) != 2 {
		t.Errorf("expected 2 tokens, got total=%d len=%d", total, len(tokens))
	}
}
