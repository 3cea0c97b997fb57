package sie

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reads a whole SIE export and returns the standardized ledger.
// Per-line problems are collected as ledger diagnostics; only an
// undecodable byte encoding or a read failure is returned as an error.
func Parse(r io.Reader) (*Ledger, error) {
	return ParseWithOptions(r, Options{})
}

// ParseBytes is Parse for callers that already hold the file in memory.
func ParseBytes(bs []byte) (*Ledger, error) {
	return parseBytes(bs, Options{}.withDefaults())
}

// ParseWithOptions parses with non-default encodings, equity split or
// logging.
func ParseWithOptions(r io.Reader, opts Options) (*Ledger, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return parseBytes(bs, opts.withDefaults())
}

type parser struct {
	ledger *Ledger
	opts   Options
	log    *slog.Logger
	line   int

	// Verification assembler state. cur is the open verification, if
	// any; inBlock is whether a `{` line has opened a transaction
	// block. Vendors emit both braced and bare forms, so the two are
	// tracked independently.
	cur     *Verification
	inBlock bool
}

func parseBytes(bs []byte, opts Options) (*Ledger, error) {
	text, encName, err := decodeBytes(bs, opts.Encodings)
	if err != nil {
		return nil, err
	}

	p := &parser{ledger: newLedger(opts), opts: opts, log: opts.Logger}
	p.log.Debug("input decoded", "encoding", encName, "bytes", len(bs))

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		p.line++
		p.decodeLine(strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		// An oversized line aborts the scan; keep what decoded so far
		// and say so rather than pretending the file ended cleanly.
		p.diag("", OutcomeTruncated, fmt.Sprintf("line scan aborted after line %d: %v", p.line, err))
	}

	// Truncated file recovery: a verification left open at end of input
	// is kept, unless we are inside an unterminated block.
	if p.cur != nil && !p.inBlock {
		p.ledger.Verifications = append(p.ledger.Verifications, p.cur)
		p.cur = nil
	}

	return p.finalize()
}

func (p *parser) decodeLine(line string) {
	if line == "" {
		return
	}

	// Block delimiters are their own lines.
	if line[0] == '{' {
		p.inBlock = true
		return
	}
	if line[0] == '}' {
		if p.cur != nil {
			p.ledger.Verifications = append(p.ledger.Verifications, p.cur)
			p.cur = nil
		}
		p.inBlock = false
		return
	}

	words := splitLine(line)
	if len(words) == 0 {
		return
	}
	tag := strings.ToUpper(strings.TrimPrefix(words[0], "#"))

	switch tag {
	case "FLAGGA":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.Flag = words[1]
		}
	case "PROGRAM":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.Program = words[1]
			if len(words) > 2 {
				p.ledger.Metadata.ProgramVersion = words[2]
			}
		}
	case "FORMAT":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.Format = words[1]
		}
	case "GEN":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.GenerationDate = isoDate(words[1])
			if len(words) > 2 {
				p.ledger.Metadata.GeneratedBy = words[2]
			}
		}
	case "SIETYP":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.SIEType = words[1]
		}
	case "ORGNR":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.OrganizationNumber = words[1]
		}
	case "FNAMN":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.CompanyName = words[1]
		}
	case "ADRESS":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.Address = words[1]
			if len(words) > 2 {
				p.ledger.Metadata.PostalCode = words[2]
			}
			if len(words) > 3 {
				p.ledger.Metadata.City = words[3]
			}
		}
	case "KPTYP":
		if p.need(words, 2, tag) {
			p.ledger.Metadata.AccountPlan = words[1]
		}
	case "RAR":
		p.decodeRAR(words)
	case "KONTO":
		p.decodeKonto(words)
	case "SRU":
		p.decodeSRU(words)
	case "IB":
		p.decodeBalance(words, tag, p.ledger.OpeningBalances)
	case "UB":
		p.decodeBalance(words, tag, p.ledger.ClosingBalances)
	case "RES":
		p.decodeRes(line)
	case "VER":
		p.decodeVer(words)
	case "TRANS":
		p.decodeTrans(words, tag, false)
	case "RTRANS":
		p.decodeTrans(words, tag, true)
	case "BTRANS":
		// Budget transactions are recognized but not part of the model.
	default:
		p.diag(tag, OutcomeUnrecognized, "no decoder for record tag")
	}
}

// need checks the minimum token count for a tag, recording a diagnostic
// and skipping the line otherwise.
func (p *parser) need(words []string, n int, tag string) bool {
	if len(words) < n {
		p.diag(tag, OutcomeSkipped, fmt.Sprintf("expected at least %d fields, got %d", n, len(words)))
		return false
	}
	return true
}

func (p *parser) decodeRAR(words []string) {
	if !p.need(words, 3, "RAR") {
		return
	}
	yearID := words[1]
	fy := FiscalYear{StartDate: words[2]}
	if len(words) > 3 {
		fy.EndDate = words[3]
	}
	p.ledger.Metadata.FiscalYears[yearID] = fy

	if yearID != "0" {
		return
	}
	m := &p.ledger.Metadata
	m.CurrentFiscalYear = fy
	if len(fy.StartDate) >= 8 {
		m.FinancialYearStart = isoDate(fy.StartDate)
		m.CurrentFiscalYearStartYear = fy.StartDate[:4]
	}
	if len(fy.EndDate) >= 8 {
		m.FinancialYearEnd = isoDate(fy.EndDate)
		m.CurrentFiscalYearEndYear = fy.EndDate[:4]
	}
}

func (p *parser) decodeKonto(words []string) {
	if !p.need(words, 2, "KONTO") {
		return
	}
	number := words[1]
	name := ""
	if len(words) > 2 {
		name = words[2]
	}
	if acc, ok := p.ledger.Accounts[number]; ok {
		acc.Name = name
		acc.Type = Classify(number)
		return
	}
	p.ledger.Accounts[number] = &Account{
		Number: number,
		Name:   name,
		Type:   Classify(number),
	}
}

func (p *parser) decodeSRU(words []string) {
	if !p.need(words, 3, "SRU") {
		return
	}
	acc, ok := p.ledger.Accounts[words[1]]
	if !ok {
		// Known limitation: an SRU code arriving before its #KONTO
		// line has nowhere to attach and is dropped.
		p.diag("SRU", OutcomeDropped, fmt.Sprintf("code %s for unknown account %s", words[2], words[1]))
		return
	}
	acc.SRU = words[2]
}

func (p *parser) decodeBalance(words []string, tag string, into BalanceMap) {
	if !p.need(words, 3, tag) {
		return
	}
	year, account := words[1], words[2]
	amount := decimal.Zero
	if len(words) > 3 {
		var err error
		amount, err = ParseAmount(words[3])
		if err != nil {
			p.diag(tag, OutcomeSkipped, fmt.Sprintf("bad amount %q: %v", words[3], err))
			return
		}
	}
	into.put(BalanceEntry{Account: account, Amount: amount, Year: year})
	if tag == "IB" && p.ledger.openingYear == "" {
		p.ledger.openingYear = year
	}
}

func (p *parser) decodeVer(words []string) {
	// A new #VER closes the previous bare-form verification; the braced
	// form is closed by its `}` line instead.
	if p.cur != nil && !p.inBlock {
		p.ledger.Verifications = append(p.ledger.Verifications, p.cur)
	}

	ver := &Verification{Transactions: []Transaction{}}
	if len(words) > 1 {
		ver.Series = words[1]
	}
	if len(words) > 2 {
		ver.Number = words[2]
		ver.OriginalNumber = words[2]
	}
	if len(words) > 3 {
		ver.OriginalDate = words[3]
		ver.Date = isoDate(words[3])
	}
	if len(words) > 4 {
		ver.Text = words[4]
	}
	if len(words) > 5 {
		ver.RegDate = words[5]
	}
	p.cur = ver
}

func (p *parser) decodeTrans(words []string, tag string, reverse bool) {
	if p.cur == nil {
		p.diag(tag, OutcomeSkipped, "transaction outside a verification")
		return
	}
	if !p.need(words, 2, tag) {
		return
	}

	t := Transaction{Account: words[1]}
	fields := words[2:]

	// The object group is optional and may have been split into several
	// tokens; collapse it back into one field.
	i := 0
	if len(fields) > 0 && strings.HasPrefix(fields[0], "{") {
		j := 0
		for j < len(fields)-1 && !strings.HasSuffix(fields[j], "}") {
			j++
		}
		t.Object = strings.Join(fields[:j+1], " ")
		i = j + 1
	}

	if i < len(fields) {
		amount, err := ParseAmount(fields[i])
		if err != nil {
			p.diag(tag, OutcomeSkipped, fmt.Sprintf("bad amount %q: %v", fields[i], err))
		} else if reverse {
			// RTRANS is a reversing entry; its amount is negated.
			t.Amount = amount.Neg()
		} else {
			t.Amount = amount
		}
		i++
	}

	// The date column is optional; when the next field does not look
	// like a date the remaining columns just shift up. After it the
	// layout is positional: text, quantity, signature. An empty quoted
	// text placeholder still occupies its column.
	if i < len(fields) && isDate8(fields[i]) {
		t.Date = isoDate(fields[i])
		i++
	}
	if i < len(fields) {
		t.Text = fields[i]
		i++
	}
	if i < len(fields) {
		if q, err := ParseAmount(fields[i]); err == nil {
			t.Quantity = q
		}
		i++
	}
	if i < len(fields) {
		t.Signature = fields[i]
	}

	if t.Date == "" {
		t.Date = p.cur.Date
	}
	if acc, ok := p.ledger.Accounts[t.Account]; ok {
		t.AccountName = acc.Name
	}

	p.cur.Transactions = append(p.cur.Transactions, t)
}

// isDate8 reports whether s is a raw YYYYMMDD date token.
func isDate8(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isoDate converts a raw YYYYMMDD token to YYYY-MM-DD, leaving anything
// else untouched.
func isoDate(s string) string {
	if !isDate8(s) {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}
