package sie

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceLine is one account row on the balance sheet.
type BalanceLine struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSheet partitions the nonzero-balance accounts into assets,
// liabilities and equity.
type BalanceSheet struct {
	Assets                 map[string]BalanceLine `json:"assets"`
	Liabilities            map[string]BalanceLine `json:"liabilities"`
	Equity                 map[string]BalanceLine `json:"equity"`
	TotalAssets            decimal.Decimal        `json:"total_assets"`
	TotalLiabilitiesEquity decimal.Decimal        `json:"total_liabilities_equity"`
}

// BalanceSheet derives the balance sheet from the current ledger state.
// It is a pure derivation and may be recomputed any number of times.
func (l *Ledger) BalanceSheet() *BalanceSheet {
	l.computeBalances()

	bs := &BalanceSheet{
		Assets:      make(map[string]BalanceLine),
		Liabilities: make(map[string]BalanceLine),
		Equity:      make(map[string]BalanceLine),
	}
	for _, number := range l.sortedAccounts() {
		acc := l.Accounts[number]
		if acc.Balance.IsZero() {
			continue
		}
		switch acc.Type {
		case Asset:
			bs.Assets[number] = BalanceLine{Name: acc.Name, Balance: acc.Balance}
			bs.TotalAssets = bs.TotalAssets.Add(acc.Balance)
		case LiabilityEquity:
			if l.isEquity(number) {
				bs.Equity[number] = BalanceLine{Name: acc.Name, Balance: acc.Balance}
			} else {
				bs.Liabilities[number] = BalanceLine{Name: acc.Name, Balance: acc.Balance}
			}
			bs.TotalLiabilitiesEquity = bs.TotalLiabilitiesEquity.Add(acc.Balance)
		}
	}
	return bs
}

// IncomeLine is one account row on the income statement.
type IncomeLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeStatement partitions income and expense accounts. Amounts are
// human-facing: income rows are sign-flipped from their accounting-
// negative storage.
type IncomeStatement struct {
	Income        map[string]IncomeLine `json:"income"`
	Expenses      map[string]IncomeLine `json:"expenses"`
	TotalIncome   decimal.Decimal       `json:"total_income"`
	TotalExpenses decimal.Decimal       `json:"total_expenses"`
	NetIncome     decimal.Decimal       `json:"net_income"`
}

// IncomeStatement derives the income statement from the current ledger
// state. Where a #RES total exists for an account it takes precedence
// over the transaction-derived balance.
func (l *Ledger) IncomeStatement() *IncomeStatement {
	l.computeBalances()

	results := l.Results[l.resultYearKey()]
	is := &IncomeStatement{
		Income:   make(map[string]IncomeLine),
		Expenses: make(map[string]IncomeLine),
	}
	for _, number := range l.sortedAccounts() {
		acc := l.Accounts[number]
		amount := acc.Balance
		entry, fromResult := results[number]
		if fromResult {
			amount = entry.Amount
		}
		if amount.IsZero() && !fromResult {
			continue
		}
		switch acc.Type {
		case Income:
			// Income accounts carry accounting-negative amounts.
			amount = amount.Neg()
			is.Income[number] = IncomeLine{Name: acc.Name, Amount: amount}
			is.TotalIncome = is.TotalIncome.Add(amount)
		case Expense:
			is.Expenses[number] = IncomeLine{Name: acc.Name, Amount: amount}
			is.TotalExpenses = is.TotalExpenses.Add(amount)
		}
	}
	is.NetIncome = is.TotalIncome.Sub(is.TotalExpenses)
	return is
}

// resultYearKey picks the #RES year the reports read from: the literal
// current-year key "0" when present, else the first year seen in the file.
func (l *Ledger) resultYearKey() string {
	if _, ok := l.Results["0"]; ok {
		return "0"
	}
	return l.resultYear
}

// isEquity applies the configurable numeric-prefix split between equity
// and liability accounts. Every ledger is built from options that went
// through withDefaults, so the prefix list is never empty here.
func (l *Ledger) isEquity(number string) bool {
	for _, prefix := range l.opts.EquityPrefixes {
		if strings.HasPrefix(number, prefix) {
			return true
		}
	}
	return false
}

func (l *Ledger) sortedAccounts() []string {
	numbers := make([]string, 0, len(l.Accounts))
	for number := range l.Accounts {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}
