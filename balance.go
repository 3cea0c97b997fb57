package sie

import (
	"strings"

	"github.com/shopspring/decimal"
)

// computeBalances derives every account's closing balance from its
// opening balance plus the current fiscal year's transactions, tracking
// period activity separately. It starts from zero on each call, so
// reports derived from it are idempotent.
func (l *Ledger) computeBalances() {
	currentYear := l.Metadata.CurrentFiscalYearStartYear
	if currentYear == "" && len(l.Metadata.FinancialYearStart) >= 4 {
		currentYear = l.Metadata.FinancialYearStart[:4]
	}

	for _, acc := range l.Accounts {
		acc.Balance = decimal.Zero
		acc.PeriodActivity = decimal.Zero
	}

	// The opening year is the first #IB year seen in the file, not the
	// numerically smallest; vendors emit the relevant year first.
	if l.openingYear != "" {
		for number, entry := range l.OpeningBalances[l.openingYear] {
			if acc, ok := l.Accounts[number]; ok {
				acc.Balance = entry.Amount
			}
		}
	}

	active := make(map[string]bool)
	for _, ver := range l.Verifications {
		if !strings.HasPrefix(ver.Date, currentYear) {
			continue
		}
		for i := range ver.Transactions {
			t := &ver.Transactions[i]
			acc, ok := l.Accounts[t.Account]
			if !ok {
				continue
			}
			acc.Balance = acc.Balance.Add(t.Amount)
			acc.PeriodActivity = acc.PeriodActivity.Add(t.Amount)
			active[t.Account] = true
		}
	}

	// Synthesize the current year's closing entries from scratch.
	closing := make(map[string]BalanceEntry)
	for number, acc := range l.Accounts {
		if acc.Balance.IsZero() {
			continue
		}
		closing[number] = BalanceEntry{
			Account:        number,
			Amount:         acc.Balance,
			Year:           currentYear,
			HadActivity:    active[number],
			ActivityAmount: acc.PeriodActivity,
		}
	}
	l.ClosingBalances[currentYear] = closing
}
