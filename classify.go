package sie

import "strconv"

// Classify maps an account number to its fine BAS type using the first
// digit alone: 1 assets, 2 liabilities and equity, 3 income, 4-8 expenses.
// Pure and deterministic; no lookup table involved.
func Classify(number string) AccountType {
	if number == "" || number[0] < '0' || number[0] > '9' {
		return Unclassified
	}
	switch number[0] {
	case '1':
		return Asset
	case '2':
		return LiabilityEquity
	case '3':
		return Income
	case '4', '5', '6', '7', '8':
		return Expense
	default:
		return Other
	}
}

// AccountKind is the coarse thousand-range classification used while
// decoding raw records.
type AccountKind string

const (
	KindAsset             AccountKind = "asset"
	KindLiability         AccountKind = "liability"
	KindEquityOrLiability AccountKind = "equity_or_liability"
	KindIncomeStatement   AccountKind = "income_statement"
	KindOther             AccountKind = "other"
	KindUnknown           AccountKind = "unknown"
)

// Kind maps an account number to its coarse classification. It agrees
// with Classify on what is an asset and what is not.
func Kind(number string) AccountKind {
	n, err := strconv.Atoi(number)
	if err != nil {
		return KindUnknown
	}
	switch {
	case n >= 1000 && n < 2000:
		return KindAsset
	case n >= 2000 && n < 3000:
		return KindLiability
	case n >= 3000 && n < 4000:
		return KindEquityOrLiability
	case n >= 4000 && n < 8000:
		return KindIncomeStatement
	default:
		return KindOther
	}
}
