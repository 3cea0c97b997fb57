package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/alecthomas/kingpin"

	"bokslut.dev/sie"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Lshortfile)

	cmdBalance := kingpin.Command("balance", "Show balance sheet")
	cmdResult := kingpin.Command("result", "Show income statement")
	cmdJSON := kingpin.Command("json", "Dump the ledger snapshot as JSON")
	cmdDiag := kingpin.Command("diag", "Show parse diagnostics")
	infile := kingpin.Flag("input", "Input file").OpenFile(os.O_RDONLY, 0666)
	cmd := kingpin.Parse()

	input := io.Reader(os.Stdin)
	if *infile != nil {
		input = *infile
	}

	ledger, err := sie.Parse(input)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd {
	case cmdBalance.FullCommand():
		balanceReport(ledger)
	case cmdResult.FullCommand():
		resultReport(ledger)
	case cmdJSON.FullCommand():
		jsonDump(ledger)
	case cmdDiag.FullCommand():
		diagReport(ledger)
	}
}

func balanceReport(ledger *sie.Ledger) {
	bs := ledger.BalanceSheet()

	fmt.Println("TILLGÅNGAR")
	printBalanceLines(bs.Assets)
	fmtAccount("", "Summa tillgångar", bs.TotalAssets.StringFixed(2))

	fmt.Println("\nEGET KAPITAL")
	printBalanceLines(bs.Equity)
	fmt.Println("\nSKULDER")
	printBalanceLines(bs.Liabilities)
	fmtAccount("", "Summa eget kapital, skulder", bs.TotalLiabilitiesEquity.StringFixed(2))

	fmt.Println("\nRESULTAT")
	fmtAccount("", "Beräknat resultat", bs.TotalAssets.Sub(bs.TotalLiabilitiesEquity).StringFixed(2))
}

func resultReport(ledger *sie.Ledger) {
	is := ledger.IncomeStatement()

	fmt.Println("INTÄKTER")
	printIncomeLines(is.Income)
	fmtAccount("", "Summa intäkter", is.TotalIncome.StringFixed(2))

	fmt.Println("\nKOSTNADER")
	printIncomeLines(is.Expenses)
	fmtAccount("", "Summa kostnader", is.TotalExpenses.StringFixed(2))

	fmt.Println("\nRESULTAT")
	fmtAccount("", "Nettoresultat", is.NetIncome.StringFixed(2))
}

func jsonDump(ledger *sie.Ledger) {
	bs, err := ledger.Snapshot().MarshalIndentJSON()
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(bs)
	fmt.Println()
}

func diagReport(ledger *sie.Ledger) {
	if len(ledger.Diagnostics) == 0 {
		fmt.Println("no diagnostics")
		return
	}
	for _, d := range ledger.Diagnostics {
		fmt.Printf("line %d: #%s %s: %s\n", d.Line, d.Tag, d.Outcome, d.Message)
	}
}

func printBalanceLines(lines map[string]sie.BalanceLine) {
	for _, number := range sortedKeys(lines) {
		fmtAccount(number, lines[number].Name, lines[number].Balance.StringFixed(2))
	}
}

func printIncomeLines(lines map[string]sie.IncomeLine) {
	for _, number := range sortedKeys(lines) {
		fmtAccount(number, lines[number].Name, lines[number].Amount.StringFixed(2))
	}
}

func fmtAccount(id, descr, val string) {
	const formatStr = "  %4s %-48s %12s\n"
	fmt.Printf(formatStr, id, descr, val)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
