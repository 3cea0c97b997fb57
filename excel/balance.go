// Package excel renders the derived reports as styled xlsx workbooks.
package excel

import (
	"sort"

	"github.com/xuri/excelize/v2"

	"bokslut.dev/sie"
)

// BalanceXLSX renders the ledger's balance sheet as a workbook.
func BalanceXLSX(l *sie.Ledger) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "bokslut.dev/sie",
		Company:     l.Metadata.CompanyName,
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())

	_ = xlsx.SetColWidth(sheet, "A", "A", 8)
	_ = xlsx.SetColWidth(sheet, "B", "B", 50)
	_ = xlsx.SetColWidth(sheet, "C", "C", 15)

	writeBalanceSheet(xlsx, sheet, l.BalanceSheet())
	_ = xlsx.SetSheetName(sheet, "Balansräkning")

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBalanceSheet(xlsx *excelize.File, sheet string, bs *sie.BalanceSheet) {
	row := 1

	row = writeSection(xlsx, sheet, row, "Tillgångar", bs.Assets)
	row = writeTotal(xlsx, sheet, row, "Summa tillgångar", bs.TotalAssets.InexactFloat64())
	row++

	row = writeSection(xlsx, sheet, row, "Eget kapital", bs.Equity)
	row = writeSection(xlsx, sheet, row, "Skulder", bs.Liabilities)
	row = writeTotal(xlsx, sheet, row, "Summa eget kapital, skulder", bs.TotalLiabilitiesEquity.InexactFloat64())
	row++

	diff := bs.TotalAssets.Sub(bs.TotalLiabilitiesEquity)
	_ = writeTotal(xlsx, sheet, row, "Beräknat resultat", diff.InexactFloat64())
}

func writeSection(xlsx *excelize.File, sheet string, row int, header string, lines map[string]sie.BalanceLine) int {
	_ = xlsx.SetCellValue(sheet, cell('B', row), header)
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('B', row), style)
	style, _ = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom"), textAlignment("right")))
	_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), style)
	row++

	for _, number := range sortedKeys(lines) {
		line := lines[number]
		_ = xlsx.SetCellValue(sheet, cell('A', row), number)
		_ = xlsx.SetCellValue(sheet, cell('B', row), line.Name)
		_ = xlsx.SetCellValue(sheet, cell('C', row), line.Balance.InexactFloat64())
		style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), customNumberFormat()))
		_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), style)
		row++
	}
	return row
}

func writeTotal(xlsx *excelize.File, sheet string, row int, label string, value float64) int {
	_ = xlsx.SetCellValue(sheet, cell('B', row), label)
	_ = xlsx.SetCellValue(sheet, cell('C', row), value)
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), customNumberFormat(), thickBorder("top")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('C', row), style)
	return row + 1
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
