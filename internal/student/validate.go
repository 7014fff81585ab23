package student

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Field names reported in timestamp errors.
const (
	FieldCheckIn  = "asistenciaFechaHoraEntrada"
	FieldCheckOut = "asistenciaFechaHoraSalida"
)

const maxPassportLength = 20

var (
	namePattern      = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ ]{2,30}$`)
	cedulaPattern    = regexp.MustCompile(`^\d{11}$`)
	rncPattern       = regexp.MustCompile(`^\d{9}$`)
	accountPattern   = regexp.MustCompile(`^\d{6,20}$`)
	timestampPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2])/(0?[1-9]|[12][0-9]|3[01])/\d{4} (1[0-2]|0?[1-9]):[0-5][0-9] (AM|PM)$`)
)

// Catalog holds the accepted values of each enumerated field.
// It is read-only once built.
type Catalog struct {
	documentTypes []DocumentType
	currencies    []Currency
	conditions    []Condition
	accountTypes  []AccountType
}

// NewCatalog copies the given lists into a Catalog.
func NewCatalog(docs []DocumentType, currencies []Currency, conditions []Condition, accounts []AccountType) Catalog {
	return Catalog{
		documentTypes: slices.Clone(docs),
		currencies:    slices.Clone(currencies),
		conditions:    slices.Clone(conditions),
		accountTypes:  slices.Clone(accounts),
	}
}

// DefaultCatalog returns the values accepted by UEPEX.
func DefaultCatalog() Catalog {
	return NewCatalog(
		[]DocumentType{DocumentCedula, DocumentPasaporte, DocumentRNC},
		[]Currency{CurrencyDOP, CurrencyUSD, CurrencyEUR},
		[]Condition{ConditionActive, ConditionInactive, ConditionGraduated, ConditionNew},
		[]AccountType{AccountSavings, AccountChecking, AccountCheque},
	)
}

// Validator applies the field rules for student records.
type Validator struct {
	catalog Catalog
}

// NewValidator builds a validator over the given catalog.
func NewValidator(catalog Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate runs every field rule in a fixed order and merges all failures.
func (v *Validator) Validate(rec Record) Result {
	checks := []Result{
		v.FirstName(rec.FirstName),
		v.LastName(rec.LastName),
		v.DocumentType(string(rec.DocumentType)),
		v.DocumentNumber(rec.DocumentNumber, string(rec.DocumentType)),
		v.Currency(string(rec.Currency)),
		v.Condition(string(rec.Condition)),
		v.AccountType(string(rec.AccountType)),
		v.BankAccountNumber(rec.BankAccountNumber),
		v.Timestamp(rec.CheckIn, FieldCheckIn),
		v.Timestamp(rec.CheckOut, FieldCheckOut),
	}

	var errs []string
	for _, res := range checks {
		if res.Valid() {
			continue
		}
		if len(res.Errors) > 0 {
			errs = append(errs, res.Errors...)
		} else {
			errs = append(errs, res.Description)
		}
	}
	if len(errs) > 0 {
		return aggregate(errs)
	}
	return success()
}

// FirstName checks the student's given name.
func (v *Validator) FirstName(name string) Result {
	if blank(name) {
		return invalid(CodeFirstNameRequired, "Se requiere el nombre del estudiante")
	}
	if !namePattern.MatchString(name) {
		return invalid(CodeFirstNameFormat, "El nombre debe tener solo letras y espacios, máximo 30 caracteres")
	}
	return success()
}

// LastName checks the student's surnames.
func (v *Validator) LastName(name string) Result {
	if blank(name) {
		return invalid(CodeLastNameRequired, "Se requieren los apellidos del estudiante")
	}
	if !namePattern.MatchString(name) {
		return invalid(CodeLastNameFormat, "Los apellidos deben tener solo letras y espacios, máximo 30 caracteres")
	}
	return success()
}

func (v *Validator) DocumentType(docType string) Result {
	if !slices.Contains(v.catalog.documentTypes, DocumentType(docType)) {
		return invalid(CodeDocumentTypeInvalid, "Tipo de documento debe ser Cedula, Pasaporte o RNC")
	}
	return success()
}

// DocumentNumber checks the number against the format of its document type.
// Unknown types only require a non-blank number.
func (v *Validator) DocumentNumber(number, docType string) Result {
	if blank(number) {
		return invalid(CodeDocumentNumberInvalid, "Se requiere el número de documento")
	}
	switch DocumentType(docType) {
	case DocumentCedula:
		if !cedulaPattern.MatchString(number) {
			return invalid(CodeCedulaFormat, "La cédula debe tener 11 dígitos numéricos")
		}
	case DocumentRNC:
		if !rncPattern.MatchString(number) {
			return invalid(CodeRNCFormat, "El RNC debe tener 9 dígitos numéricos")
		}
	case DocumentPasaporte:
		if utf8.RuneCountInString(number) > maxPassportLength {
			return invalid(CodePassportLength, "El pasaporte no puede tener más de 20 caracteres")
		}
	}
	return success()
}

func (v *Validator) Currency(currency string) Result {
	if !slices.Contains(v.catalog.currencies, Currency(currency)) {
		return invalid(CodeCurrencyInvalid, "Moneda debe ser DOP, USD o EUR")
	}
	return success()
}

func (v *Validator) Condition(condition string) Result {
	if !slices.Contains(v.catalog.conditions, Condition(condition)) {
		return invalid(CodeConditionInvalid, "Condición del estudiante debe ser Activo, Inactivo, Graduado o Nuevo ingreso")
	}
	return success()
}

func (v *Validator) AccountType(accountType string) Result {
	if !slices.Contains(v.catalog.accountTypes, AccountType(accountType)) {
		return invalid(CodeAccountTypeInvalid, "Tipo de cuenta debe ser de Ahorro, Corriente o Cheque")
	}
	return success()
}

func (v *Validator) BankAccountNumber(account string) Result {
	if blank(account) {
		return invalid(CodeAccountRequired, "Se requiere cuenta bancaria")
	}
	if !accountPattern.MatchString(account) {
		return invalid(CodeAccountFormat, "La cuenta bancaria debe ser numérica de 6 a 20 dígitos")
	}
	return success()
}

// Timestamp checks a M/d/yyyy h:mm AM/PM value; field names the attribute in messages.
func (v *Validator) Timestamp(value, field string) Result {
	if blank(value) {
		return invalid(CodeDateRequired, "Se requiere "+field)
	}
	if !timestampPattern.MatchString(value) {
		return invalid(CodeDateFormat, field+" debe tener formato MM/dd/yyyy h:mm AM/PM")
	}
	return success()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
