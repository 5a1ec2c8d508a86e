package solscan

// TokenMeta is token metadata from /token/meta.
type TokenMeta struct {
	Address  string  `json:"address"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Icon     string  `json:"icon"`
	Decimals int     `json:"decimals"`
	Holder   int     `json:"holder"`
	Supply   string  `json:"supply"`
	Price    float64 `json:"price"` // USD; 0 when the provider has no price
}

// TokenTransfer is one transfer record from /token/transfer or
// /account/transfer. Amount is in raw base units.
type TokenTransfer struct {
	TransID       string  `json:"trans_id"`
	BlockID       int64   `json:"block_id"`
	BlockTime     int64   `json:"block_time"` // epoch seconds
	Time          string  `json:"time"`
	ActivityType  string  `json:"activity_type"`
	FromAddress   string  `json:"from_address"`
	ToAddress     string  `json:"to_address"`
	TokenAddress  string  `json:"token_address"`
	TokenDecimals int     `json:"token_decimals"`
	Amount        float64 `json:"amount"`
	Flow          string  `json:"flow"` // "in" or "out"; empty on token-level queries
}

// TokenHolder is one holder entry from /token/holders.
type TokenHolder struct {
	Address  string  `json:"address"`
	Amount   float64 `json:"amount"`
	Decimals int     `json:"decimals"`
	Owner    string  `json:"owner"`
	Rank     int     `json:"rank"`
}

// TokenHolderPage is one page of token holders.
type TokenHolderPage struct {
	Total int           `json:"total"`
	Items []TokenHolder `json:"items"`
}

// AccountDetail describes a wallet account.
type AccountDetail struct {
	Account      string `json:"account"`
	Lamports     int64  `json:"lamports"`
	Type         string `json:"type"`
	Executable   bool   `json:"executable"`
	OwnerProgram string `json:"owner_program"`
	RentEpoch    int64  `json:"rent_epoch"`
	IsOnCurve    bool   `json:"is_oncurve"`
}

// TokenAccount is one SPL token account held by a wallet.
type TokenAccount struct {
	TokenAccount  string  `json:"token_account"`
	TokenAddress  string  `json:"token_address"`
	Amount        float64 `json:"amount"`
	TokenDecimals int     `json:"token_decimals"`
	Owner         string  `json:"owner"`
}

// TokenPrice is one price point from /token/price.
type TokenPrice struct {
	Date  int64   `json:"date"` // yyyymmdd
	Price float64 `json:"price"`
}
