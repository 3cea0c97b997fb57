package sie

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// #RES is the record vendors disagree on the most: quoting, curly-brace
// wrapped amounts, comma decimals and trailing vendor suffixes all occur
// in the wild. Decoding is an ordered strategy chain, first match wins,
// and a line no strategy can read is dropped with a diagnostic rather
// than failing the document.

type resStrategy struct {
	name string
	re   *regexp.Regexp
}

// resStrategies is the recovery order, most specific first. Each pattern
// captures (year, account, amount).
var resStrategies = []resStrategy{
	{"plain", regexp.MustCompile(`RES\s+(-?\d+)\s+(\d+)\s+(-?[\d.]+)`)},
	{"comma-decimal", regexp.MustCompile(`RES\s+(-?\d+)\s+(\d+)\s+(-?[\d,.]+)`)},
	{"braced-amount", regexp.MustCompile(`RES\s+(-?\d+)\s+(\d+)\s*\{\s*(-?[\d.]+)\s*\}`)},
	{"quoted-amount", regexp.MustCompile(`RES\s+(-?\d+)\s+(\d+)\s+"(-?[\d.]+)"`)},
	{"quoted-triple", regexp.MustCompile(`RES\s+"(-?\d+)"\s+"(\d+)"\s+"(-?[\d.]+)"`)},
	{"trailing-brace", regexp.MustCompile(`RES\s+(-?\d+)\s+(\d+)\s+(-?[\d.]+)\s+\{.*\}`)},
	{"permissive", regexp.MustCompile(`#?RES\s+(-?\d+)\s+(\d+)[^\d-]+(-?[\d.]+)`)},
}

var (
	resSignedInt = regexp.MustCompile(`^-?\d+$`)
	resDigits    = regexp.MustCompile(`^\d+$`)
	resYearOnly  = regexp.MustCompile(`RES\s+(-?\d+)`)
	resBareInt   = regexp.MustCompile(`\b(\d+)\b`)
)

func (p *parser) decodeRes(line string) {
	stripped := strings.TrimSpace(strings.TrimPrefix(line, "#"))

	// Strict form first: tag, year, account, optional amount, straight
	// from the quote-aware tokenizer.
	if year, account, amount, ok := resStrict(stripped); ok {
		p.storeRes(year, account, amount, "strict")
		return
	}

	// Recovery chain, tried against both the tag-stripped and original
	// forms of the line.
	for _, s := range resStrategies {
		for _, candidate := range []string{stripped, line} {
			m := s.re.FindStringSubmatch(candidate)
			if m == nil {
				continue
			}
			amount, err := ParseAmount(m[3])
			if err != nil {
				continue
			}
			p.storeRes(m[1], m[2], amount, s.name)
			return
		}
	}

	// Last resort: a signed integer after the tag is the year; the
	// first two bare integers after it are account and amount.
	if m := resYearOnly.FindStringSubmatchIndex(stripped); m != nil {
		year := stripped[m[2]:m[3]]
		ints := resBareInt.FindAllString(stripped[m[1]:], 2)
		if len(ints) == 2 {
			if amount, err := ParseAmount(ints[1]); err == nil {
				p.storeRes(year, ints[0], amount, "integer-scan")
				return
			}
		}
	}

	p.diag("RES", OutcomeRecoveryExhausted, "no strategy matched: "+line)
}

func resStrict(stripped string) (year, account string, amount decimal.Decimal, ok bool) {
	words := splitLine(stripped)
	if len(words) < 3 || len(words) > 4 {
		return "", "", decimal.Zero, false
	}
	if !strings.EqualFold(words[0], "RES") {
		return "", "", decimal.Zero, false
	}
	if !resSignedInt.MatchString(words[1]) || !resDigits.MatchString(words[2]) {
		return "", "", decimal.Zero, false
	}
	amount = decimal.Zero
	if len(words) == 4 {
		var err error
		amount, err = ParseAmount(words[3])
		if err != nil {
			return "", "", decimal.Zero, false
		}
	}
	return words[1], words[2], amount, true
}

// storeRes records a recovered triple. A duplicate (year, account) key
// overwrites the earlier value: last write wins, no accumulation.
func (p *parser) storeRes(year, account string, amount decimal.Decimal, strategy string) {
	p.ledger.Results.put(BalanceEntry{Account: account, Amount: amount, Year: year})
	if p.ledger.resultYear == "" {
		p.ledger.resultYear = year
	}
	p.log.Debug("res decoded", "line", p.line, "strategy", strategy,
		"year", year, "account", account, "amount", amount.String())
}
