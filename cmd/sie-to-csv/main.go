package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"bokslut.dev/sie"
)

func main() {
	dir := flag.String("dir", ".", "Directory")
	flag.Parse()

	ledger, err := sie.Parse(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	writeAccounts(*dir, ledger)
	writeTransactions(*dir, ledger)
}

func writeAccounts(dir string, ledger *sie.Ledger) {
	fd, err := os.Create(filepath.Join(dir, "accounts.csv"))
	if err != nil {
		log.Fatal(err)
	}
	cw := csv.NewWriter(fd)
	cw.Write([]string{"Account", "Name", "Type", "Kind", "SRU", "Balance", "PeriodActivity"})

	numbers := make([]string, 0, len(ledger.Accounts))
	for number := range ledger.Accounts {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	for _, number := range numbers {
		acc := ledger.Accounts[number]
		cw.Write([]string{
			acc.Number,
			acc.Name,
			string(acc.Type),
			string(sie.Kind(acc.Number)),
			acc.SRU,
			acc.Balance.StringFixed(2),
			acc.PeriodActivity.StringFixed(2),
		})
	}
	cw.Flush()
	fd.Close()
}

func writeTransactions(dir string, ledger *sie.Ledger) {
	fd, err := os.Create(filepath.Join(dir, "transactions.csv"))
	if err != nil {
		log.Fatal(err)
	}
	cw := csv.NewWriter(fd)
	cw.Write([]string{"Series", "Number", "Date", "Text", "Account", "AccountName", "Amount", "Total"})

	totals := map[string]decimal.Decimal{}
	for _, ver := range ledger.Verifications {
		for _, t := range ver.Transactions {
			totals[t.Account] = totals[t.Account].Add(t.Amount)
			cw.Write([]string{
				ver.Series,
				ver.Number,
				t.Date,
				firstNonEmpty(t.Text, ver.Text),
				t.Account,
				t.AccountName,
				t.Amount.StringFixed(2),
				totals[t.Account].StringFixed(2),
			})
		}
	}
	cw.Flush()
	fd.Close()
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
