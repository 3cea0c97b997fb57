package sie

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTestdata(t *testing.T) {
	fd, err := os.Open("testdata/testdata.se")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()

	l, err := Parse(fd)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", jsons(l.Diagnostics))
	}

	m := l.Metadata
	if m.CompanyName != "Norrviken Bygg AB" {
		t.Errorf("company name %q", m.CompanyName)
	}
	if m.OrganizationNumber != "556677-8899" {
		t.Errorf("orgnr %q", m.OrganizationNumber)
	}
	if m.Program != "Fortnox" || m.ProgramVersion != "3.57.6" {
		t.Errorf("program %q %q", m.Program, m.ProgramVersion)
	}
	if m.GenerationDate != "2024-03-01" || m.GeneratedBy != "Anna" {
		t.Errorf("generation %q by %q", m.GenerationDate, m.GeneratedBy)
	}
	if m.Format != "PC8" || m.SIEType != "4" || m.Flag != "0" {
		t.Errorf("format %q type %q flag %q", m.Format, m.SIEType, m.Flag)
	}
	if m.Address != "Storgatan 1" || m.PostalCode != "12345" || m.City != "Stockholm" {
		t.Errorf("address %q %q %q", m.Address, m.PostalCode, m.City)
	}
	if m.AccountPlan != "EUBAS97" || m.Currency != "SEK" {
		t.Errorf("plan %q currency %q", m.AccountPlan, m.Currency)
	}
	if len(m.FiscalYears) != 2 {
		t.Errorf("fiscal years %v", m.FiscalYears)
	}
	if m.FinancialYearStart != "2024-01-01" || m.FinancialYearEnd != "2024-12-31" {
		t.Errorf("year bounds %q %q", m.FinancialYearStart, m.FinancialYearEnd)
	}
	if m.CurrentFiscalYearStartYear != "2024" || m.CurrentFiscalYearEndYear != "2024" {
		t.Errorf("year keys %q %q", m.CurrentFiscalYearStartYear, m.CurrentFiscalYearEndYear)
	}

	if len(l.Accounts) != 5 {
		t.Fatalf("accounts %s", jsons(l.Accounts))
	}
	kassa := l.Accounts["1910"]
	if kassa.Name != "Kassa" || kassa.Type != Asset || kassa.SRU != "7281" {
		t.Errorf("account 1910 %s", jsons(kassa))
	}
	if l.Accounts["3011"].Type != Income || l.Accounts["4010"].Type != Expense {
		t.Error("income statement accounts misclassified")
	}
	if l.Accounts["2081"].Type != LiabilityEquity {
		t.Error("account 2081 misclassified")
	}

	if len(l.Verifications) != 2 {
		t.Fatalf("verifications %s", jsons(l.Verifications))
	}
	v := l.Verifications[0]
	if v.Series != "A" || v.Number != "1" || v.Date != "2024-01-15" || v.Text != "Kontantforsaljning" {
		t.Errorf("verification %s", jsons(v))
	}
	if v.OriginalNumber != "1" || v.OriginalDate != "20240115" {
		t.Errorf("originals %q %q", v.OriginalNumber, v.OriginalDate)
	}
	if len(v.Transactions) != 2 {
		t.Fatalf("transactions %s", jsons(v.Transactions))
	}
	tr := v.Transactions[0]
	if tr.Account != "1910" || tr.Date != "2024-01-15" || tr.AccountName != "Kassa" {
		t.Errorf("transaction %s", jsons(tr))
	}
	deceq(t, "trans amount", tr.Amount, "500.00")

	deceq(t, "opening 0/1910", l.OpeningBalances["0"]["1910"].Amount, "1000.00")
	deceq(t, "opening -1/1910", l.OpeningBalances["-1"]["1910"].Amount, "800.00")
	deceq(t, "closing 0/1910", l.ClosingBalances["0"]["1910"].Amount, "1200.00")
	deceq(t, "result 0/3011", l.Results["0"]["3011"].Amount, "-2500.00")
	deceq(t, "result 0/4010", l.Results["0"]["4010"].Amount, "1200.00")
	deceq(t, "result -1/3011", l.Results["-1"]["3011"].Amount, "-2000.00")

	// Derived closing entries for the current year: opening plus the
	// year's transactions, with activity tracked.
	computed := l.ClosingBalances["2024"]
	entry, ok := computed["1910"]
	if !ok {
		t.Fatalf("no computed closing for 1910: %s", jsons(computed))
	}
	deceq(t, "computed 1910", entry.Amount, "1200.00")
	if !entry.HadActivity {
		t.Error("1910 should have activity")
	}
	deceq(t, "activity 1910", entry.ActivityAmount, "200.00")
	deceq(t, "computed 3011", computed["3011"].Amount, "-500.00")
	deceq(t, "computed 4010", computed["4010"].Amount, "300.00")
	if _, ok := computed["2081"]; ok {
		t.Error("zero balance account 2081 should have no closing entry")
	}
}

// Opening balance plus posted transactions must equal the derived closing
// balance exactly.
func TestParseBalanceRoundTrip(t *testing.T) {
	const input = `
#RAR 0 20240101 20241231
#KONTO 1910 "Kassa"
#IB 0 1910 1000.00
#VER A 1 20240115 "Insattning"
{
#TRANS 1910 {} 500.00 20240115
}
`
	l := parseString(t, input)
	entry := l.ClosingBalances["2024"]["1910"]
	deceq(t, "closing", entry.Amount, "1500.00")
	if !entry.HadActivity {
		t.Error("expected activity")
	}
	deceq(t, "activity", entry.ActivityAmount, "500.00")
	deceq(t, "account balance", l.Accounts["1910"].Balance, "1500.00")
}

func TestParseRTRANS(t *testing.T) {
	const input = `
#RAR 0 20240101 20241231
#KONTO 1910 "Kassa"
#VER A 1 20240115 "Rattelse"
{
#TRANS 1910 {} 100.00 20240115
#RTRANS 1910 {} 100.00 20240115
}
`
	l := parseString(t, input)
	trs := l.Verifications[0].Transactions
	if len(trs) != 2 {
		t.Fatalf("transactions %s", jsons(trs))
	}
	deceq(t, "trans", trs[0].Amount, "100.00")
	deceq(t, "rtrans", trs[1].Amount, "-100.00")
	deceq(t, "net balance", l.Accounts["1910"].Balance, "0")
}

func TestParseBareVerifications(t *testing.T) {
	// Some exports omit the braces entirely. A new #VER closes the
	// previous one and end of input closes the last.
	const input = `
#KONTO 1910 "Kassa"
VER A 1 20240115 "Forsta"
TRANS 1910 {} 50.00
VER A 2 20240116 "Andra"
TRANS 1910 {} 25.00
`
	l := parseString(t, input)
	if len(l.Verifications) != 2 {
		t.Fatalf("verifications %s", jsons(l.Verifications))
	}
	if len(l.Verifications[0].Transactions) != 1 || len(l.Verifications[1].Transactions) != 1 {
		t.Fatalf("transactions %s", jsons(l.Verifications))
	}
	// Transaction dates fall back to the verification date.
	if d := l.Verifications[0].Transactions[0].Date; d != "2024-01-15" {
		t.Errorf("fallback date %q", d)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	// A file truncated inside an open transaction block drops the
	// half-read verification.
	const input = `
#KONTO 1910 "Kassa"
#VER A 1 20240115 "Avhuggen"
{
#TRANS 1910 {} 50.00
`
	l := parseString(t, input)
	if len(l.Verifications) != 0 {
		t.Fatalf("verifications %s", jsons(l.Verifications))
	}
}

func TestParseSRUBeforeKonto(t *testing.T) {
	const input = `
#SRU 9999 7777
#KONTO 1910 "Kassa"
`
	l := parseString(t, input)
	if len(l.Diagnostics) != 1 {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
	d := l.Diagnostics[0]
	if d.Tag != "SRU" || d.Outcome != OutcomeDropped {
		t.Errorf("diagnostic %s", jsons(d))
	}
}

func TestParseMalformedLines(t *testing.T) {
	const input = `
#KONTO
#XYZZY 1 2
#KONTO 1910 "Kassa"
`
	l := parseString(t, input)
	if len(l.Diagnostics) != 2 {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
	if l.Diagnostics[0].Outcome != OutcomeSkipped {
		t.Errorf("diagnostic %s", jsons(l.Diagnostics[0]))
	}
	if l.Diagnostics[1].Outcome != OutcomeUnrecognized || l.Diagnostics[1].Tag != "XYZZY" {
		t.Errorf("diagnostic %s", jsons(l.Diagnostics[1]))
	}
	// The good line after the bad ones still decodes.
	if _, ok := l.Accounts["1910"]; !ok {
		t.Error("account 1910 missing")
	}
}

func TestParseTransOutsideVerification(t *testing.T) {
	const input = `
#KONTO 1910 "Kassa"
#TRANS 1910 {} 50.00
`
	l := parseString(t, input)
	if len(l.Verifications) != 0 {
		t.Fatalf("verifications %s", jsons(l.Verifications))
	}
	if len(l.Diagnostics) != 1 || l.Diagnostics[0].Outcome != OutcomeSkipped {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
}

func TestParseOverlongLine(t *testing.T) {
	// A single line past the scanner buffer cap aborts the scan; the
	// part already decoded survives and the cut is diagnosed.
	input := "#KONTO 1910 \"Kassa\"\n#FNAMN \"" + strings.Repeat("x", 1<<20+1) + "\"\n"
	l := parseString(t, input)
	if _, ok := l.Accounts["1910"]; !ok {
		t.Error("account 1910 missing")
	}
	if len(l.Diagnostics) != 1 {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
	if l.Diagnostics[0].Outcome != OutcomeTruncated {
		t.Errorf("diagnostic %s", jsons(l.Diagnostics[0]))
	}
}

func TestParseTransTrailingColumns(t *testing.T) {
	// The columns after the date are positional: text, quantity,
	// signature. A quoted-empty text placeholder must not shift the
	// quantity and signature out of their columns.
	const input = `
#KONTO 1910 "Kassa"
#VER A 1 20240115 "Leverans"
{
#TRANS 1910 {} 500.00 20240115 "" 1 "AB"
#TRANS 1910 {} 250.00 20240116 "Frakt" 2.5 "CD"
}
`
	l := parseString(t, input)
	if len(l.Diagnostics) != 0 {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
	trs := l.Verifications[0].Transactions
	if len(trs) != 2 {
		t.Fatalf("transactions %s", jsons(trs))
	}

	if trs[0].Text != "" {
		t.Errorf("text %q, expected empty placeholder", trs[0].Text)
	}
	deceq(t, "quantity", trs[0].Quantity, "1")
	if trs[0].Signature != "AB" {
		t.Errorf("signature %q", trs[0].Signature)
	}

	if trs[1].Text != "Frakt" || trs[1].Signature != "CD" {
		t.Errorf("transaction %s", jsons(trs[1]))
	}
	deceq(t, "quantity", trs[1].Quantity, "2.5")
	if trs[1].Date != "2024-01-16" {
		t.Errorf("date %q", trs[1].Date)
	}
}

func TestParseBTRANSIgnored(t *testing.T) {
	const input = `
#KONTO 1910 "Kassa"
#VER A 1 20240115 "Budget"
{
#BTRANS 1910 {} 999.00 20240115
#TRANS 1910 {} 50.00 20240115
}
`
	l := parseString(t, input)
	if len(l.Diagnostics) != 0 {
		t.Fatalf("diagnostics %s", jsons(l.Diagnostics))
	}
	if n := len(l.Verifications[0].Transactions); n != 1 {
		t.Errorf("expected 1 transaction, got %d", n)
	}
}

func parseString(t *testing.T, input string) *Ledger {
	t.Helper()
	l, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func deceq(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: got %v, expected %v", what, got, want)
	}
}

func jsons(v interface{}) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bs)
}
