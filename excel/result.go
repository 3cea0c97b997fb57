package excel

import (
	"github.com/xuri/excelize/v2"

	"bokslut.dev/sie"
)

// ResultXLSX renders the ledger's income statement as a workbook.
func ResultXLSX(l *sie.Ledger) ([]byte, error) {
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

	writeIncomeStatement(xlsx, sheet, l.IncomeStatement())
	_ = xlsx.SetSheetName(sheet, "Resultaträkning")

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeIncomeStatement(xlsx *excelize.File, sheet string, is *sie.IncomeStatement) {
	row := 1

	row = writeIncomeSection(xlsx, sheet, row, "Intäkter", is.Income)
	row = writeTotal(xlsx, sheet, row, "Summa intäkter", is.TotalIncome.InexactFloat64())
	row++

	row = writeIncomeSection(xlsx, sheet, row, "Kostnader", is.Expenses)
	row = writeTotal(xlsx, sheet, row, "Summa kostnader", is.TotalExpenses.InexactFloat64())
	row++

	_ = writeTotal(xlsx, sheet, row, "Nettoresultat", is.NetIncome.InexactFloat64())
}

func writeIncomeSection(xlsx *excelize.File, sheet string, row int, header string, lines map[string]sie.IncomeLine) int {
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
		_ = xlsx.SetCellValue(sheet, cell('C', row), line.Amount.InexactFloat64())
		style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), customNumberFormat()))
		_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), style)
		row++
	}
	return row
}
