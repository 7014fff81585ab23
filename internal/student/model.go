package student

import (
	"errors"
	"strings"
)

// Sentinel errors returned by stores.
var (
	ErrNotFound = errors.New("student not found")
	ErrConflict = errors.New("student already exists")
)

// DocumentType identifies the kind of identity document.
type DocumentType string

const (
	DocumentCedula    DocumentType = "Cedula"
	DocumentPasaporte DocumentType = "Pasaporte"
	DocumentRNC       DocumentType = "RNC"
)

// Currency is the currency of the student's bank account.
type Currency string

const (
	CurrencyDOP Currency = "DOP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Condition is the enrolment condition of a student.
type Condition string

const (
	ConditionActive    Condition = "Activo"
	ConditionInactive  Condition = "Inactivo"
	ConditionGraduated Condition = "Graduado"
	ConditionNew       Condition = "Nuevo ingreso"
)

// AccountType is the kind of bank account.
type AccountType string

const (
	AccountSavings  AccountType = "Ahorro"
	AccountChecking AccountType = "Corriente"
	AccountCheque   AccountType = "Cheque"
)

// Record is one student's identity, course, banking and attendance data.
// DocumentNumber is the natural key.
type Record struct {
	DocumentType          DocumentType `json:"tipoDocumento"`
	DocumentNumber        string       `json:"numeroDocumento"`
	FirstName             string       `json:"nombreEstudiante"`
	LastName              string       `json:"apellidosEstudiante"`
	CourseCode            string       `json:"codigoCurso"`
	Condition             Condition    `json:"condicionEstudiante"`
	CourseName            string       `json:"curso"`
	Region                string       `json:"regional"`
	AccountType           AccountType  `json:"tipoCuenta"`
	Currency              Currency     `json:"moneda"`
	BankName              string       `json:"banco"`
	BankAccountNumber     string       `json:"cuentaBancariaEstudiante"`
	BankAccountHolderName string       `json:"nombreCuentaBancaria"`
	AttendanceCount       int          `json:"asistencia"`
	AbsenceCount          int          `json:"inasistencia"`
	CheckIn               string       `json:"asistenciaFechaHoraEntrada"`
	CheckOut              string       `json:"asistenciaFechaHoraSalida"`
}

// FullName joins first and last name the way listings display it.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Sample returns the canonical example record served by the public endpoint.
func Sample() Record {
	return Record{
		DocumentType:          DocumentCedula,
		DocumentNumber:        "50231212122",
		FirstName:             "María",
		LastName:              "Pérez Marte",
		CourseCode:            "01",
		Condition:             ConditionGraduated,
		CourseName:            "técnico informático",
		Region:                "Santo Domingo",
		AccountType:           AccountSavings,
		Currency:              CurrencyDOP,
		BankName:              "Banreservas",
		BankAccountNumber:     "9602451545",
		BankAccountHolderName: "María Pérez",
		AttendanceCount:       1,
		AbsenceCount:          0,
		CheckIn:               "10/25/2025 2:00 PM",
		CheckOut:              "10/25/2025 4:00 PM",
	}
}
