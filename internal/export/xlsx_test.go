package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"uepex/internal/student"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func openXLSX(t *testing.T, records []student.Record) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records, fixedNow))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteXLSX_Content(t *testing.T) {
	second := student.Sample()
	second.DocumentNumber = "40212345678"
	second.FirstName = "Pedro"
	second.CheckOut = "not-a-date"

	f := openXLSX(t, []student.Record{student.Sample(), second})

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{
		"Cedula", "50231212122", "María Pérez Marte", "Pérez Marte", "01", "Graduado", "técnico informático",
		"Santo Domingo", "Ahorro", "DOP", "Banreservas", "9602451545", "María Pérez", "1", "0",
		"25/10/2025 14:00", "25/10/2025 16:00",
	}, rows[1])
	assert.Equal(t, "Pedro Pérez Marte", rows[2][2])
	assert.Equal(t, "not-a-date", rows[2][16])
}

func TestWriteXLSX_Footer(t *testing.T) {
	f := openXLSX(t, []student.Record{student.Sample(), student.Sample()})

	row := FooterRow(2)
	label, _ := f.GetCellValue(SheetName, "A6")
	stamp, _ := f.GetCellValue(SheetName, "B6")
	totalLabel, _ := f.GetCellValue(SheetName, "A7")
	total, _ := f.GetCellValue(SheetName, "B7")

	assert.Equal(t, 6, row)
	assert.Equal(t, "Reporte generado el:", label)
	assert.Equal(t, "16/10/2026 09:30", stamp)
	assert.Equal(t, "Total de estudiantes:", totalLabel)
	assert.Equal(t, "2", total)

	blank, _ := f.GetCellValue(SheetName, "A4")
	assert.Empty(t, blank)

	styleID, err := f.GetCellStyle(SheetName, "B7")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotEmpty(t, style.Fill.Color)
	assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), "D3D3D3")
}

func TestWriteXLSX_HeaderStyle(t *testing.T) {
	f := openXLSX(t, []student.Record{student.Sample()})

	for _, cell := range []string{"A1", "Q1"} {
		styleID, err := f.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)

		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
		require.NotEmpty(t, style.Fill.Color, cell)
		assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), "ADD8E6", cell)
	}
}

func TestWriteXLSX_ColumnsSizedToContent(t *testing.T) {
	rec := student.Sample()
	rec.CourseName = strings.Repeat("x", 60)

	f := openXLSX(t, []student.Record{rec})

	width, err := f.GetColWidth(SheetName, "G")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, 60.0)
	narrow, err := f.GetColWidth(SheetName, "J")
	require.NoError(t, err)
	assert.Less(t, narrow, width)
}

func TestWriteXLSX_AutoFilter(t *testing.T) {
	f := openXLSX(t, nil)

	var found bool
	for _, dn := range f.GetDefinedName() {
		if strings.Contains(dn.Name, "_FilterDatabase") {
			found = true
			assert.Contains(t, dn.RefersTo, "$A$1:$Q$1")
		}
	}
	assert.True(t, found, "autofilter not defined")
	total, _ := f.GetCellValue(SheetName, "B5")
	assert.Equal(t, "0", total)
}
