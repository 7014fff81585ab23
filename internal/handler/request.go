package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"uepex/internal/student"
)

// studentRequest carries the length and presence limits checked while
// binding. Format and catalog rules run in the student validator so every
// failure is reported together.
type studentRequest struct {
	DocumentType          string `json:"tipoDocumento"`
	DocumentNumber        string `json:"numeroDocumento" binding:"max=20"`
	FirstName             string `json:"nombreEstudiante"`
	LastName              string `json:"apellidosEstudiante"`
	CourseCode            string `json:"codigoCurso" binding:"required,max=10"`
	Condition             string `json:"condicionEstudiante"`
	CourseName            string `json:"curso" binding:"required,max=100"`
	Region                string `json:"regional" binding:"required,max=50"`
	AccountType           string `json:"tipoCuenta"`
	Currency              string `json:"moneda"`
	BankName              string `json:"banco" binding:"required,max=50"`
	BankAccountNumber     string `json:"cuentaBancariaEstudiante"`
	BankAccountHolderName string `json:"nombreCuentaBancaria" binding:"required,max=100"`
	AttendanceCount       int    `json:"asistencia" binding:"min=0"`
	AbsenceCount          int    `json:"inasistencia" binding:"min=0"`
	CheckIn               string `json:"asistenciaFechaHoraEntrada"`
	CheckOut              string `json:"asistenciaFechaHoraSalida"`
}

func (r studentRequest) record() student.Record {
	return student.Record{
		DocumentType:          student.DocumentType(r.DocumentType),
		DocumentNumber:        r.DocumentNumber,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		CourseCode:            r.CourseCode,
		Condition:             student.Condition(r.Condition),
		CourseName:            r.CourseName,
		Region:                r.Region,
		AccountType:           student.AccountType(r.AccountType),
		Currency:              student.Currency(r.Currency),
		BankName:              r.BankName,
		BankAccountNumber:     r.BankAccountNumber,
		BankAccountHolderName: r.BankAccountHolderName,
		AttendanceCount:       r.AttendanceCount,
		AbsenceCount:          r.AbsenceCount,
		CheckIn:               r.CheckIn,
		CheckOut:              r.CheckOut,
	}
}

var jsonNamesOnce sync.Once

// registerJSONNames makes binding errors report wire field names.
func registerJSONNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindingMessages turns a binding error into client-facing messages.
func bindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"El cuerpo de la solicitud no es un JSON válido"}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s es requerido", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s no puede exceder %s caracteres", fe.Field(), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s debe ser un número positivo", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no es válido", fe.Field()))
		}
	}
	return msgs
}
