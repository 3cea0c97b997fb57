// Package sie parses Swedish SIE bookkeeping exports into a standardized
// ledger. Exports from different vendors disagree on quoting, decimal
// separators, record ordering and byte encoding; the parser recovers a
// numerically exact ledger from what it is given and records a diagnostic
// for every line it cannot use, instead of failing the whole file.
package sie // import "bokslut.dev/sie"

import (
	"github.com/shopspring/decimal"
)

// Ledger is the aggregate root produced by a parse. It owns the metadata,
// the chart of accounts, the ordered verification list and the three
// balance collections. Reports are derived from it on demand.
type Ledger struct {
	Metadata        Metadata
	Accounts        map[string]*Account
	Verifications   []*Verification
	OpeningBalances BalanceMap
	ClosingBalances BalanceMap
	Results         BalanceMap
	Diagnostics     []Diagnostic

	// File-order year keys. Map iteration would lose which year the
	// vendor emitted first, and the accumulator needs exactly that.
	openingYear string
	resultYear  string

	opts Options
}

func newLedger(opts Options) *Ledger {
	return &Ledger{
		Metadata: Metadata{
			Currency:    opts.Currency,
			FiscalYears: make(map[string]FiscalYear),
		},
		Accounts:        make(map[string]*Account),
		Verifications:   []*Verification{},
		OpeningBalances: make(BalanceMap),
		ClosingBalances: make(BalanceMap),
		Results:         make(BalanceMap),
		opts:            opts,
	}
}

// AccountType is the fine BAS classification, derived from the account
// number alone.
type AccountType string

const (
	Asset           AccountType = "Asset"
	LiabilityEquity AccountType = "Liability/Equity"
	Income          AccountType = "Income"
	Expense         AccountType = "Expense"
	Other           AccountType = "Other"
	Unclassified    AccountType = ""
)

// Account is one entry in the chart of accounts. Balance and
// PeriodActivity are recomputed from scratch by every report derivation.
type Account struct {
	Number         string          `json:"number"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	SRU            string          `json:"sru_code,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	PeriodActivity decimal.Decimal `json:"transactions_amount"`
}

// Verification is one booking event grouping one or more transactions.
// Transaction order is insertion order and is preserved.
type Verification struct {
	Series  string `json:"series"`
	Number  string `json:"number"`
	Date    string `json:"date"`
	Text    string `json:"text"`
	RegDate string `json:"reg_date,omitempty"`

	// Raw number and date tokens as they appeared in the file. Some
	// vendors abuse these fields, so the originals are kept verbatim.
	OriginalNumber string `json:"original_number"`
	OriginalDate   string `json:"original_date"`

	Transactions []Transaction `json:"transactions"`
}

// Transaction is one debit or credit line within a verification.
type Transaction struct {
	Account     string          `json:"account"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Text        string          `json:"text"`
	AccountName string          `json:"account_name"`
	Object      string          `json:"object_info,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Signature   string          `json:"signature,omitempty"`
}

// BalanceEntry is one opening, closing or result amount for an account in
// a fiscal year. HadActivity and ActivityAmount are only populated on
// closing entries synthesized by the balance pass.
type BalanceEntry struct {
	Account        string          `json:"account"`
	Amount         decimal.Decimal `json:"amount"`
	Year           string          `json:"year"`
	HadActivity    bool            `json:"had_transactions"`
	ActivityAmount decimal.Decimal `json:"transaction_amount"`
}

// BalanceMap holds balance entries keyed by fiscal-year key, then account
// number. Year keys are opaque strings, signed small integers in practice.
type BalanceMap map[string]map[string]BalanceEntry

func (m BalanceMap) put(e BalanceEntry) {
	ym, ok := m[e.Year]
	if !ok {
		ym = make(map[string]BalanceEntry)
		m[e.Year] = ym
	}
	ym[e.Account] = e
}

// FiscalYear is one #RAR period with raw YYYYMMDD dates.
type FiscalYear struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Metadata holds the file-level records of an export.
type Metadata struct {
	CompanyName        string `json:"company_name"`
	OrganizationNumber string `json:"organization_number"`
	Address            string `json:"address,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	City               string `json:"city,omitempty"`
	GenerationDate     string `json:"generation_date"`
	GeneratedBy        string `json:"generated_by,omitempty"`
	Program            string `json:"program"`
	ProgramVersion     string `json:"program_version"`
	Format             string `json:"format,omitempty"`
	SIEType            string `json:"sie_type,omitempty"`
	Flag               string `json:"flag,omitempty"`
	AccountPlan        string `json:"account_plan,omitempty"`
	Currency           string `json:"currency"`

	// Fiscal periods keyed by signed year offset, "0" being the year
	// the file is about. The current year's bounds are also copied out
	// as formatted dates for convenience.
	FiscalYears                map[string]FiscalYear `json:"fiscal_years"`
	CurrentFiscalYear          FiscalYear            `json:"current_fiscal_year"`
	FinancialYearStart         string                `json:"financial_year_start"`
	FinancialYearEnd           string                `json:"financial_year_end"`
	CurrentFiscalYearStartYear string                `json:"current_fiscal_year_start_year"`
	CurrentFiscalYearEndYear   string                `json:"current_fiscal_year_end_year"`
}
