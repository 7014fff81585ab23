package export

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"uepex/internal/student"
)

// SheetName is the title of the single worksheet.
const SheetName = "Estudiantes UEPEX"

const (
	lightBlue   = "#ADD8E6"
	lightGray   = "#D3D3D3"
	maxColWidth = 80
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "#000000", Style: 1},
	{Type: "top", Color: "#000000", Style: 1},
	{Type: "right", Color: "#000000", Style: 1},
	{Type: "bottom", Color: "#000000", Style: 1},
}

// WriteXLSX writes records as a styled workbook. now is printed in the footer.
func WriteXLSX(w io.Writer, records []student.Record, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return err
	}
	widths := make([]int, len(Headers))

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", styles.header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		values := cells(rec)
		for col, v := range values {
			widths[col] = max(widths[col], utf8.RuneCountInString(fmt.Sprint(v)))
		}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	if len(records) > 0 {
		last := fmt.Sprintf("%s%d", lastCol, len(records)+1)
		if err := f.SetCellStyle(SheetName, "A2", last, styles.body); err != nil {
			return fmt.Errorf("style rows: %w", err)
		}
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, float64(min(width+2, maxColWidth))); err != nil {
			return fmt.Errorf("size column %s: %w", col, err)
		}
	}

	if err := f.AutoFilter(SheetName, "A1:"+lastCol+"1", nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}

	if err := writeFooter(f, len(records), now, styles.footer); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// FooterRow is the first footer row for a sheet with n records: two blank
// rows separate it from the data.
func FooterRow(n int) int {
	return n + 4
}

func writeFooter(f *excelize.File, n int, now time.Time, style int) error {
	row := FooterRow(n)
	footer := []struct {
		cell  string
		value any
	}{
		{fmt.Sprintf("A%d", row), "Reporte generado el:"},
		{fmt.Sprintf("B%d", row), now.Format(outputDateLayout)},
		{fmt.Sprintf("A%d", row+1), "Total de estudiantes:"},
		{fmt.Sprintf("B%d", row+1), n},
	}
	for _, c := range footer {
		if err := f.SetCellValue(SheetName, c.cell, c.value); err != nil {
			return fmt.Errorf("write footer %s: %w", c.cell, err)
		}
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row+1), style); err != nil {
		return fmt.Errorf("style footer: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header, body, footer int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{lightBlue}},
		Border: thinBorder,
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	s.body, err = f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return s, fmt.Errorf("body style: %w", err)
	}
	s.footer, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{lightGray}},
	})
	if err != nil {
		return s, fmt.Errorf("footer style: %w", err)
	}
	return s, nil
}
