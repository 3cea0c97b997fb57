package main

import (
	"log/slog"
	"os"

	"bokslut.dev/sie"
	"bokslut.dev/sie/excel"
)

func main() {
	ledger, err := sie.Parse(os.Stdin)
	if err != nil {
		slog.Error("Error parsing SIE file", "error", err)
		os.Exit(1)
	}
	for _, d := range ledger.Diagnostics {
		slog.Warn("Parse diagnostic", "line", d.Line, "tag", d.Tag, "outcome", d.Outcome)
	}

	write("balance.xlsx", ledger, excel.BalanceXLSX)
	write("result.xlsx", ledger, excel.ResultXLSX)
}

func write(name string, ledger *sie.Ledger, render func(*sie.Ledger) ([]byte, error)) {
	bs, err := render(ledger)
	if err != nil {
		slog.Error("Error creating Excel file", "file", name, "error", err)
		return
	}
	if err := os.WriteFile(name, bs, 0o644); err != nil {
		slog.Error("Error writing Excel file", "file", name, "error", err)
	}
}
