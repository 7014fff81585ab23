package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"uepex/internal/student"
)

const (
	csvSeparator = ";"
	csvNewline   = "\r\n"
	utf8BOM      = "\uFEFF"
)

// WriteCSV writes records as semicolon separated UTF-8 text with a BOM and a
// header row.
func WriteCSV(w io.Writer, records []student.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}
	if err := writeCSVRow(bw, Headers); err != nil {
		return err
	}

	row := make([]string, len(Headers))
	for _, rec := range records {
		for i, v := range cells(rec) {
			switch v := v.(type) {
			case string:
				row[i] = EscapeCSV(v)
			case int:
				row[i] = strconv.Itoa(v)
			default:
				return fmt.Errorf("unexpected cell type %T", v)
			}
		}
		if err := writeCSVRow(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVRow(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, csvSeparator)); err != nil {
		return err
	}
	_, err := w.WriteString(csvNewline)
	return err
}

// EscapeCSV quotes a field only when it contains the separator, a double
// quote or a line break. Inner quotes are doubled.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ";\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
