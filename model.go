package sie

// finalize normalizes the freshly decoded ledger into its canonical form:
// account types re-derived from the number, account names propagated onto
// transactions that were decoded before their #KONTO line, dates defaulted
// from the verification, and the balance pass run once.
func (p *parser) finalize() (*Ledger, error) {
	l := p.ledger
	if l == nil || l.Accounts == nil {
		return nil, ErrStructural
	}

	for _, acc := range l.Accounts {
		acc.Type = Classify(acc.Number)
	}

	for _, ver := range l.Verifications {
		for i := range ver.Transactions {
			t := &ver.Transactions[i]
			if t.Date == "" {
				t.Date = ver.Date
			}
			if t.AccountName == "" {
				if acc, ok := l.Accounts[t.Account]; ok {
					t.AccountName = acc.Name
				}
			}
		}
	}

	l.computeBalances()
	return l, nil
}
