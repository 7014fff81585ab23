package student

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SampleIsValid(t *testing.T) {
	res := NewValidator(DefaultCatalog()).Validate(Sample())

	assert.True(t, res.Valid())
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Nil(t, res.Errors)
}

func TestValidate_CollectsEveryFailureInOrder(t *testing.T) {
	rec := Sample()
	rec.FirstName = ""
	rec.DocumentNumber = "123"
	rec.Currency = "MXN"
	rec.CheckOut = "2025-10-25 16:00"

	res := NewValidator(DefaultCatalog()).Validate(rec)

	require.False(t, res.Valid())
	assert.Equal(t, CodeErrors, res.Code)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Equal(t, "Se encontraron errores en la validación", res.Description)
	assert.Equal(t, []string{
		"Se requiere el nombre del estudiante",
		"La cédula debe tener 11 dígitos numéricos",
		"Moneda debe ser DOP, USD o EUR",
		"asistenciaFechaHoraSalida debe tener formato MM/dd/yyyy h:mm AM/PM",
	}, res.Errors)
}

func TestValidate_EveryFieldInvalid(t *testing.T) {
	rec := Record{DocumentType: "DNI"}

	res := NewValidator(DefaultCatalog()).Validate(rec)

	require.Len(t, res.Errors, 10)
	assert.Equal(t, "Se requiere el nombre del estudiante", res.Errors[0])
	assert.Equal(t, "Se requieren los apellidos del estudiante", res.Errors[1])
	assert.Equal(t, "Tipo de documento debe ser Cedula, Pasaporte o RNC", res.Errors[2])
	assert.Equal(t, "Se requiere el número de documento", res.Errors[3])
	assert.Equal(t, "Se requiere cuenta bancaria", res.Errors[7])
	assert.Equal(t, "Se requiere asistenciaFechaHoraEntrada", res.Errors[8])
	assert.Equal(t, "Se requiere asistenciaFechaHoraSalida", res.Errors[9])
}

func TestValidate_CedulaTooShort(t *testing.T) {
	rec := Sample()
	rec.DocumentNumber = "123"

	res := NewValidator(DefaultCatalog()).Validate(rec)

	assert.Equal(t, CodeErrors, res.Code)
	assert.Equal(t, []string{"La cédula debe tener 11 dígitos numéricos"}, res.Errors)
}

func TestDocumentNumber(t *testing.T) {
	v := NewValidator(DefaultCatalog())
	tests := []struct {
		name     string
		number   string
		docType  string
		wantCode string
	}{
		{"blank", "   ", "Cedula", CodeDocumentNumberInvalid},
		{"cedula ok", "50231212122", "Cedula", CodeOK},
		{"cedula with dashes", "502-3121212-2", "Cedula", CodeCedulaFormat},
		{"cedula non ascii digits", "５０２３１２１２１２２", "Cedula", CodeCedulaFormat},
		{"rnc ok", "101234567", "RNC", CodeOK},
		{"rnc ten digits", "1012345678", "RNC", CodeRNCFormat},
		{"passport ok", "AB1234567", "Pasaporte", CodeOK},
		{"passport twenty runes", strings.Repeat("Ñ", 20), "Pasaporte", CodeOK},
		{"passport too long", strings.Repeat("X", 21), "Pasaporte", CodePassportLength},
		{"unknown type skips format", "anything", "DNI", CodeOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, v.DocumentNumber(tt.number, tt.docType).Code)
		})
	}
}

func TestNames(t *testing.T) {
	v := NewValidator(DefaultCatalog())
	tests := []struct {
		name      string
		value     string
		wantFirst string
		wantLast  string
	}{
		{"accents and spaces", "José Ñúñez", CodeOK, CodeOK},
		{"umlaut", "Güemes", CodeOK, CodeOK},
		{"whitespace only", "  ", CodeFirstNameRequired, CodeLastNameRequired},
		{"single letter", "A", CodeFirstNameFormat, CodeLastNameFormat},
		{"digits", "Ana2", CodeFirstNameFormat, CodeLastNameFormat},
		{"hyphen", "Ana-María", CodeFirstNameFormat, CodeLastNameFormat},
		{"thirty runes", strings.Repeat("á", 30), CodeOK, CodeOK},
		{"thirty one runes", strings.Repeat("a", 31), CodeFirstNameFormat, CodeLastNameFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFirst, v.FirstName(tt.value).Code)
			assert.Equal(t, tt.wantLast, v.LastName(tt.value).Code)
		})
	}
}

func TestEnumerations(t *testing.T) {
	v := NewValidator(DefaultCatalog())

	assert.True(t, v.DocumentType("RNC").Valid())
	assert.Equal(t, CodeDocumentTypeInvalid, v.DocumentType("cedula").Code)
	assert.True(t, v.Currency("EUR").Valid())
	assert.Equal(t, CodeCurrencyInvalid, v.Currency("dop").Code)
	assert.True(t, v.Condition("Nuevo ingreso").Valid())
	assert.Equal(t, CodeConditionInvalid, v.Condition("Discapacitado").Code)
	assert.True(t, v.AccountType("Cheque").Valid())
	assert.Equal(t, CodeAccountTypeInvalid, v.AccountType("").Code)
}

func TestCatalogIsInjected(t *testing.T) {
	catalog := NewCatalog(
		[]DocumentType{DocumentCedula},
		[]Currency{CurrencyUSD},
		[]Condition{ConditionActive},
		[]AccountType{AccountSavings},
	)
	v := NewValidator(catalog)

	assert.Equal(t, CodeDocumentTypeInvalid, v.DocumentType("RNC").Code)
	assert.Equal(t, CodeCurrencyInvalid, v.Currency("DOP").Code)
	assert.True(t, v.Currency("USD").Valid())
}

func TestNewCatalogCopiesInput(t *testing.T) {
	currencies := []Currency{CurrencyDOP}
	v := NewValidator(NewCatalog(nil, currencies, nil, nil))

	currencies[0] = "XXX"

	assert.True(t, v.Currency("DOP").Valid())
	assert.False(t, v.Currency("XXX").Valid())
}

func TestBankAccountNumber(t *testing.T) {
	v := NewValidator(DefaultCatalog())

	assert.Equal(t, CodeAccountRequired, v.BankAccountNumber("").Code)
	assert.Equal(t, CodeAccountFormat, v.BankAccountNumber("12345").Code)
	assert.Equal(t, CodeAccountFormat, v.BankAccountNumber("12345a").Code)
	assert.Equal(t, CodeAccountFormat, v.BankAccountNumber(strings.Repeat("1", 21)).Code)
	assert.True(t, v.BankAccountNumber("123456").Valid())
	assert.True(t, v.BankAccountNumber(strings.Repeat("9", 20)).Valid())
}

func TestTimestamp(t *testing.T) {
	v := NewValidator(DefaultCatalog())
	tests := []struct {
		value    string
		wantCode string
	}{
		{"10/25/2025 2:00 PM", CodeOK},
		{"01/05/2025 09:30 AM", CodeOK},
		{"12/31/2025 12:59 AM", CodeOK},
		{"", CodeDateRequired},
		{"13/01/2025 2:00 PM", CodeDateFormat},
		{"10/32/2025 2:00 PM", CodeDateFormat},
		{"10/25/2025 14:00", CodeDateFormat},
		{"10/25/2025 2:00 pm", CodeDateFormat},
		{"10/25/25 2:00 PM", CodeDateFormat},
		{"10/25/2025 2:60 PM", CodeDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, v.Timestamp(tt.value, FieldCheckIn).Code)
		})
	}

	res := v.Timestamp("", FieldCheckOut)
	assert.Equal(t, []string{"Se requiere asistenciaFechaHoraSalida"}, res.Errors)
}

func TestCountsAreNotRangeChecked(t *testing.T) {
	rec := Sample()
	rec.AttendanceCount = -1
	rec.AbsenceCount = -5

	assert.True(t, NewValidator(DefaultCatalog()).Validate(rec).Valid())
}
