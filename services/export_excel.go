package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	linesSheet      = "Lines"
	commissionSheet = "Commission"
)

// GenerateExcel writes the bill summary as a workbook with a Lines sheet and
// a Commission sheet and returns the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), linesSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(commissionSheet); err != nil {
		return nil, fmt.Errorf("create commission sheet: %w", err)
	}

	st, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeLinesSheet(f, st, data); err != nil {
		return nil, err
	}
	if err := writeCommissionSheet(f, st, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, subtitle, header, cell, money, label, total int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return st, fmt.Errorf("create title style: %w", err)
	}
	if st.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11, Color: "#555555"},
	}); err != nil {
		return st, fmt.Errorf("create subtitle style: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create header style: %w", err)
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create cell style: %w", err)
	}
	// Built-in number format 8: $#,##0.00 with negatives in red.
	if st.money, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 8,
	}); err != nil {
		return st, fmt.Errorf("create money style: %w", err)
	}
	if st.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, fmt.Errorf("create label style: %w", err)
	}
	if st.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 8,
	}); err != nil {
		return st, fmt.Errorf("create total style: %w", err)
	}
	return st, nil
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}

func writeTitle(f *excelize.File, st sheetStyles, sheet, lastCol string, data ExportData) error {
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", data.Title)
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.title)

	f.SetCellValue(sheet, "A2", "Generated: "+data.GeneratedAt.Format("2006-01-02 15:04"))
	f.SetCellStyle(sheet, "A2", "A2", st.subtitle)

	carrier := string(data.Account.Carrier)
	if carrier == "" {
		carrier = "(not selected)"
	}
	f.SetCellValue(sheet, "A3", sanitizeExcelCell("Carrier: "+carrier))
	f.SetCellStyle(sheet, "A3", "A3", st.subtitle)
	return nil
}

func writeLinesSheet(f *excelize.File, st sheetStyles, data ExportData) error {
	sheet := linesSheet
	if err := setWidths(f, sheet, map[string]float64{"A": 6, "B": 28, "C": 22, "D": 28, "E": 14}); err != nil {
		return err
	}
	if err := writeTitle(f, st, sheet, "E", data); err != nil {
		return err
	}

	headers := []string{"#", "Customer", "Plan", "Add-ons", "Price / mo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A5", "E5", st.header)

	rowNum := 6
	for _, r := range data.Rows {
		n := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheet, "A"+n, r.Number)
		f.SetCellValue(sheet, "B"+n, excelText(r.CustomerName))
		f.SetCellValue(sheet, "C"+n, excelText(r.PlanOrSuggest))
		f.SetCellValue(sheet, "D"+n, excelText(r.AddOns))
		f.SetCellValue(sheet, "E"+n, r.PricePerMonth)
		f.SetCellStyle(sheet, "A"+n, "D"+n, st.cell)
		f.SetCellStyle(sheet, "E"+n, "E"+n, st.money)
		rowNum++
	}

	rowNum++
	n := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheet, "D"+n, "Estimated monthly total:")
	f.SetCellStyle(sheet, "D"+n, "D"+n, st.label)
	f.SetCellValue(sheet, "E"+n, data.MonthlyTotal)
	f.SetCellStyle(sheet, "E"+n, "E"+n, st.total)

	rowNum++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), "All prices are shown before taxes.")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), st.subtitle)
	return nil
}

func writeCommissionSheet(f *excelize.File, st sheetStyles, data ExportData) error {
	sheet := commissionSheet
	if err := setWidths(f, sheet, map[string]float64{"A": 32, "B": 10, "C": 14, "D": 14, "E": 14}); err != nil {
		return err
	}
	if err := writeTitle(f, st, sheet, "E", data); err != nil {
		return err
	}

	headers := []string{"Opportunity", "Count", "Monthly", "Rate", "Commission"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A5", "E5", st.header)

	rowNum := 6
	for _, it := range data.Commission.Items {
		n := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheet, "A"+n, sanitizeExcelCell(it.Label))
		f.SetCellValue(sheet, "B"+n, it.Count)
		if it.Monthly != nil {
			f.SetCellValue(sheet, "C"+n, *it.Monthly)
		}
		f.SetCellValue(sheet, "D"+n, it.Rate)
		f.SetCellValue(sheet, "E"+n, it.Amount)
		f.SetCellStyle(sheet, "A"+n, "B"+n, st.cell)
		f.SetCellStyle(sheet, "C"+n, "E"+n, st.money)
		rowNum++
	}

	rowNum++
	label := "Total commission:"
	if data.Commission.Regime == RegimePrimary {
		label = "Total potential commission:"
	}
	n := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheet, "D"+n, label)
	f.SetCellStyle(sheet, "D"+n, "D"+n, st.label)
	f.SetCellValue(sheet, "E"+n, data.Commission.Total)
	f.SetCellStyle(sheet, "E"+n, "E"+n, st.total)
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// excelText sanitizes s, leaving the empty-field placeholder as is.
func excelText(s string) string {
	if s == emptyField {
		return s
	}
	return sanitizeExcelCell(s)
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
