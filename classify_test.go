package sie

import (
	"strconv"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		number string
		typ    AccountType
	}{
		{"1910", Asset},
		{"1000", Asset},
		{"2081", LiabilityEquity},
		{"2440", LiabilityEquity},
		{"3011", Income},
		{"4010", Expense},
		{"5010", Expense},
		{"6310", Expense},
		{"7010", Expense},
		{"8999", Expense},
		{"0999", Other},
		{"9999", Other},
		{"", Unclassified},
		{"abc", Unclassified},
		{"-12", Unclassified},
	}

	for _, c := range cases {
		if got := Classify(c.number); got != c.typ {
			t.Errorf("Classify(%q) = %q, expected %q", c.number, got, c.typ)
		}
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		number string
		kind   AccountKind
	}{
		{"1000", KindAsset},
		{"1999", KindAsset},
		{"2000", KindLiability},
		{"2999", KindLiability},
		{"3000", KindEquityOrLiability},
		{"3999", KindEquityOrLiability},
		{"4000", KindIncomeStatement},
		{"7999", KindIncomeStatement},
		{"8000", KindOther},
		{"0999", KindOther},
		{"9999", KindOther},
		{"abc", KindUnknown},
		{"", KindUnknown},
	}

	for _, c := range cases {
		if got := Kind(c.number); got != c.kind {
			t.Errorf("Kind(%q) = %q, expected %q", c.number, got, c.kind)
		}
	}
}

// Both classifications must agree on what is an asset for every four
// digit account number.
func TestClassifyKindAssetAgreement(t *testing.T) {
	for n := 1000; n < 10000; n++ {
		number := strconv.Itoa(n)
		fine := Classify(number) == Asset
		coarse := Kind(number) == KindAsset
		if fine != coarse {
			t.Errorf("asset disagreement for %s: Classify=%v Kind=%v", number, fine, coarse)
		}
	}
}
