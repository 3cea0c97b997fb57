package sie

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount as found in SIE records. Vendors
// emit both `.` and `,` as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
