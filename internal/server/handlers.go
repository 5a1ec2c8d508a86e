package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"soylana/internal/crosscheck"
	"soylana/internal/holderscan"
	"soylana/internal/observability"
	"soylana/internal/solscan"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":        "Soylana",
		"description": "Crypto Token Analysis & Trading Tool",
		"version":     Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ==================== Token passthroughs ====================

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	total, tokens, err := s.holderscan.ListTokens(r.Context(), limit, offset)
	observability.RecordUpstreamRequest("holderscan", "tokens", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":  total,
		"tokens": tokens,
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.holderscan.Token(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "token", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleTokenStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.holderscan.TokenStats(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "token_stats", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTokenPnL(w http.ResponseWriter, r *http.Request) {
	pnl, err := s.holderscan.TokenPnL(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "token_pnl", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pnl)
}

func (s *Server) handleWalletCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.holderscan.WalletCategories(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "wallet_categories", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleSupplyBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.holderscan.SupplyBreakdown(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "supply_breakdown", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// analysisResponse is the combined token view. The optional sections are
// null when the provider has no data for the token, instead of failing the
// whole analysis.
type analysisResponse struct {
	Token            *holderscan.Token            `json:"token"`
	Stats            *holderscan.TokenStats       `json:"stats"`
	HolderDeltas     *holderscan.HolderDeltas     `json:"holder_deltas"`
	HolderBreakdowns *holderscan.HolderBreakdowns `json:"holder_breakdowns"`
	PnL              *holderscan.TokenPnL         `json:"pnl"`
	WalletCategories *holderscan.WalletCategories `json:"wallet_categories"`
	SupplyBreakdown  *holderscan.SupplyBreakdown  `json:"supply_breakdown"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := r.PathValue("address")

	token, err := s.holderscan.Token(ctx, address)
	observability.RecordUpstreamRequest("holderscan", "token", err)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := s.holderscan.TokenStats(ctx, address)
	observability.RecordUpstreamRequest("holderscan", "token_stats", err)
	if err != nil {
		writeError(w, err)
		return
	}
	deltas, err := s.holderscan.HolderDeltas(ctx, address)
	observability.RecordUpstreamRequest("holderscan", "holder_deltas", err)
	if err != nil {
		writeError(w, err)
		return
	}
	breakdowns, err := s.holderscan.HolderBreakdowns(ctx, address)
	observability.RecordUpstreamRequest("holderscan", "holder_breakdowns", err)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := analysisResponse{
		Token:            token,
		Stats:            stats,
		HolderDeltas:     deltas,
		HolderBreakdowns: breakdowns,
	}

	// Optional sections: not every token has PnL, category or supply data.
	if pnl, err := s.holderscan.TokenPnL(ctx, address); err == nil {
		resp.PnL = pnl
	} else {
		s.logger.Printf("analysis %s: pnl unavailable: %v", address, err)
	}
	if categories, err := s.holderscan.WalletCategories(ctx, address); err == nil {
		resp.WalletCategories = categories
	} else {
		s.logger.Printf("analysis %s: wallet categories unavailable: %v", address, err)
	}
	if supply, err := s.holderscan.SupplyBreakdown(ctx, address); err == nil {
		resp.SupplyBreakdown = supply
	} else {
		s.logger.Printf("analysis %s: supply breakdown unavailable: %v", address, err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ==================== Holder passthroughs ====================

func (s *Server) handleHolders(w http.ResponseWriter, r *http.Request) {
	filters := holderscan.HolderFilters{}
	if v, ok := queryFloat(r, "min_amount"); ok {
		filters.MinAmount = &v
	}
	if v, ok := queryFloat(r, "max_amount"); ok {
		filters.MaxAmount = &v
	}
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	holders, err := s.holderscan.Holders(r.Context(), r.PathValue("address"), filters, limit, offset)
	observability.RecordUpstreamRequest("holderscan", "holders", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holders)
}

func (s *Server) handleHolderDeltas(w http.ResponseWriter, r *http.Request) {
	deltas, err := s.holderscan.HolderDeltas(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "holder_deltas", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deltas)
}

func (s *Server) handleHolderBreakdowns(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := s.holderscan.HolderBreakdowns(r.Context(), r.PathValue("address"))
	observability.RecordUpstreamRequest("holderscan", "holder_breakdowns", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdowns)
}

// ==================== Transfer passthrough ====================

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	filters := solscan.TransferFilters{
		FromTime: int64(queryInt(r, "from_time", 0)),
		ToTime:   int64(queryInt(r, "to_time", 0)),
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 100)

	transfers, err := s.solscan.TokenTransfers(r.Context(), r.PathValue("address"), filters, page, pageSize)
	observability.RecordUpstreamRequest("solscan", "token_transfers", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transfers": transfers,
		"page":      page,
		"page_size": pageSize,
	})
}

// ==================== Wallet analysis ====================

func (s *Server) handleWalletStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.holderscan.WalletStats(r.Context(), r.PathValue("address"), r.PathValue("wallet"))
	observability.RecordUpstreamRequest("holderscan", "wallet_stats", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ==================== Cross-check ====================

func (s *Server) handleCrossCheckHolders(w http.ResponseWriter, r *http.Request) {
	var req crosscheck.HoldersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := s.orchestrator.CrossCheckByHolders(r.Context(), req)
	if err != nil {
		observability.RecordCrossCheck("holders", 0, time.Since(start), err)
		writeError(w, err)
		return
	}
	observability.RecordCrossCheck("holders", result.TotalCommon, time.Since(start), nil)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCrossCheckTraders(w http.ResponseWriter, r *http.Request) {
	var req crosscheck.TradersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := s.orchestrator.CrossCheckByTraders(r.Context(), req)
	if err != nil {
		observability.RecordCrossCheck("traders", 0, time.Since(start), err)
		writeError(w, err)
		return
	}
	observability.RecordCrossCheck("traders", result.TotalCommon, time.Since(start), nil)
	writeJSON(w, http.StatusOK, result)
}

// ==================== Query helpers ====================

func queryInt(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func queryFloat(r *http.Request, key string) (float64, bool) {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
