package sie

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		out string
	}{
		{"0", true, "0"},
		{"0.00", true, "0"},
		{"9.00", true, "9"},
		{"9.50", true, "9.5"},
		{"-9.50", true, "-9.5"},
		{"9,50", true, "9.5"},
		{"-9,50", true, "-9.5"},
		{"2500.00", true, "2500"},
		{" 1234.56 ", true, "1234.56"},
		{"50000", true, "50000"},
		{"banana", false, "0"},
		{"1..2", false, "0"},
		{"", false, "0"},
	}

	for _, c := range cases {
		v, err := ParseAmount(c.in)
		if c.ok && err != nil {
			t.Error("unexpected failure:", c.in)
		} else if !c.ok && err == nil {
			t.Error("unexpected success:", c.in)
		} else if c.ok && !v.Equal(decimal.RequireFromString(c.out)) {
			t.Errorf("unexpected value %v != %v for %v", v, c.out, c.in)
		}
	}
}
