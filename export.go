package sie

import "encoding/json"

// Snapshot is the serializable view of a ledger handed to callers such as
// the web layer: the full standardized model plus both derived reports.
type Snapshot struct {
	Metadata        Metadata            `json:"metadata"`
	Accounts        map[string]*Account `json:"accounts"`
	Verifications   []*Verification     `json:"verifications"`
	OpeningBalances BalanceMap          `json:"opening_balances"`
	ClosingBalances BalanceMap          `json:"closing_balances"`
	Results         BalanceMap          `json:"results"`
	BalanceSheet    *BalanceSheet       `json:"balance_sheet"`
	IncomeStatement *IncomeStatement    `json:"income_statement"`
	Diagnostics     []Diagnostic        `json:"diagnostics,omitempty"`
}

// Snapshot materializes the exported shape, deriving both reports.
func (l *Ledger) Snapshot() *Snapshot {
	return &Snapshot{
		Metadata:        l.Metadata,
		Accounts:        l.Accounts,
		Verifications:   l.Verifications,
		OpeningBalances: l.OpeningBalances,
		ClosingBalances: l.ClosingBalances,
		Results:         l.Results,
		BalanceSheet:    l.BalanceSheet(),
		IncomeStatement: l.IncomeStatement(),
		Diagnostics:     l.Diagnostics,
	}
}

// MarshalIndentJSON renders the snapshot the way the export tools ship it.
func (s *Snapshot) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
