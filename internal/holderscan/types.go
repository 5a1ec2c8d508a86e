package holderscan

// Token is basic token information.
type Token struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Network  string `json:"network"`
	Decimals int    `json:"decimals"`
	Supply   string `json:"supply"`
}

// TokenStats holds token distribution statistics.
type TokenStats struct {
	HHI                  float64  `json:"hhi"`
	Gini                 float64  `json:"gini"`
	MedianHolderPosition int      `json:"median_holder_position"`
	AvgTimeHeld          *int64   `json:"avg_time_held"`  // seconds; nil when unavailable
	RetentionRate        *float64 `json:"retention_rate"` // nil when unavailable
}

// TokenPnL holds aggregated profit/loss statistics in USD.
type TokenPnL struct {
	BreakEvenPrice     *float64 `json:"break_even_price"` // nil when unavailable
	RealizedPnLTotal   float64  `json:"realized_pnl_total"`
	UnrealizedPnLTotal float64  `json:"unrealized_pnl_total"`
}

// WalletCategories is the breakdown of top holders by holding-duration
// category, diamond (longest) through wood (newest).
type WalletCategories struct {
	Diamond    int `json:"diamond"`
	Gold       int `json:"gold"`
	Silver     int `json:"silver"`
	Bronze     int `json:"bronze"`
	Wood       int `json:"wood"`
	NewHolders int `json:"new_holders"`
}

// SupplyBreakdown is the share of token supply held by each wallet category.
type SupplyBreakdown struct {
	Diamond float64 `json:"diamond"`
	Gold    float64 `json:"gold"`
	Silver  float64 `json:"silver"`
	Bronze  float64 `json:"bronze"`
	Wood    float64 `json:"wood"`
}

// Holder is one token holder as reported by the holders endpoint.
// Amount is in raw base units; Rank is 1-based (1 = largest holder),
// 0 when the provider did not assign one.
type Holder struct {
	Address         string  `json:"address"`
	SPLTokenAccount string  `json:"spl_token_account"`
	Amount          float64 `json:"amount"`
	Rank            int     `json:"rank"`
}

// HolderList is one page of token holders.
type HolderList struct {
	HolderCount int      `json:"holder_count"`
	Total       int      `json:"total"` // total matching the filters
	Holders     []Holder `json:"holders"`
}

// HolderDeltas are holder count changes over different time periods.
type HolderDeltas struct {
	Hour1   int `json:"hour_1"`
	Hours2  int `json:"hours_2"`
	Hours4  int `json:"hours_4"`
	Hours12 int `json:"hours_12"`
	Day1    int `json:"day_1"`
	Days3   int `json:"days_3"`
	Days7   int `json:"days_7"`
	Days14  int `json:"days_14"`
	Days30  int `json:"days_30"`
}

// holderDeltasFromAPI maps the upstream key format ("1hour", "7days", ...)
// onto the fixed struct. Missing or null values default to 0.
func holderDeltasFromAPI(raw map[string]*int) *HolderDeltas {
	get := func(key string) int {
		if v, ok := raw[key]; ok && v != nil {
			return *v
		}
		return 0
	}
	return &HolderDeltas{
		Hour1:   get("1hour"),
		Hours2:  get("2hours"),
		Hours4:  get("4hours"),
		Hours12: get("12hours"),
		Day1:    get("1day"),
		Days3:   get("3days"),
		Days7:   get("7days"),
		Days14:  get("14days"),
		Days30:  get("30days"),
	}
}

// HolderCategories is the holder count by position-value category,
// shrimp (smallest) through whale (largest).
type HolderCategories struct {
	Shrimp  int `json:"shrimp"`
	Crab    int `json:"crab"`
	Fish    int `json:"fish"`
	Dolphin int `json:"dolphin"`
	Whale   int `json:"whale"`
}

// HolderBreakdowns are holder statistics organized by holding value.
type HolderBreakdowns struct {
	TotalHolders       int               `json:"total_holders"`
	HoldersOver10USD   int               `json:"holders_over_10_usd"`
	HoldersOver100USD  int               `json:"holders_over_100_usd"`
	HoldersOver1000USD int               `json:"holders_over_1000_usd"`
	HoldersOver10kUSD  int               `json:"holders_over_10000_usd"`
	HoldersOver100kUSD int               `json:"holders_over_100k_usd"`
	HoldersOver1mUSD   int               `json:"holders_over_1m_usd"`
	Categories         *HolderCategories `json:"categories"`
}

// HoldingBreakdown is the split of one wallet's holdings by age tier.
type HoldingBreakdown struct {
	Diamond float64 `json:"diamond"`
	Gold    float64 `json:"gold"`
	Silver  float64 `json:"silver"`
	Bronze  float64 `json:"bronze"`
	Wood    float64 `json:"wood"`
}

// WalletStats are statistics for a specific wallet's token holdings.
type WalletStats struct {
	Amount           float64           `json:"amount"`
	HolderCategory   string            `json:"holder_category"` // "unknown" when absent
	AvgTimeHeld      *int64            `json:"avg_time_held"`   // seconds; nil when unavailable
	HoldingBreakdown *HoldingBreakdown `json:"holding_breakdown"`
	UnrealizedPnL    float64           `json:"unrealized_pnl"`
	RealizedPnL      float64           `json:"realized_pnl"`
}
