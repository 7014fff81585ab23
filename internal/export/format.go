// Package export renders student records as CSV and XLSX files.
package export

import (
	"time"

	"uepex/internal/student"
)

const (
	inputDateLayout  = "1/2/2006 3:04 PM"
	outputDateLayout = "02/01/2006 15:04"
)

// Headers are the column labels shared by both formats.
var Headers = []string{
	"Tipo Documento", "Número Documento", "Nombre Completo", "Apellidos",
	"Código Curso", "Condición", "Curso", "Regional", "Tipo Cuenta", "Moneda",
	"Banco", "Cuenta Bancaria", "Nombre Cuenta", "Asistencias", "Inasistencias",
	"Fecha Entrada", "Fecha Salida",
}

// FormatDate rewrites "M/d/yyyy h:mm AM/PM" as "dd/MM/yyyy HH:mm".
// Values that do not parse are returned unchanged.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(inputDateLayout, value)
	if err != nil {
		return value
	}
	return t.Format(outputDateLayout)
}

// cells returns one row in Headers order. Counts stay ints so the
// spreadsheet stores them as numbers.
func cells(rec student.Record) []any {
	return []any{
		string(rec.DocumentType),
		rec.DocumentNumber,
		rec.FullName(),
		rec.LastName,
		rec.CourseCode,
		string(rec.Condition),
		rec.CourseName,
		rec.Region,
		string(rec.AccountType),
		string(rec.Currency),
		rec.BankName,
		rec.BankAccountNumber,
		rec.BankAccountHolderName,
		rec.AttendanceCount,
		rec.AbsenceCount,
		FormatDate(rec.CheckIn),
		FormatDate(rec.CheckOut),
	}
}
