package student

// Response codes shared with API clients.
const (
	CodeOK         = "CV000"
	CodeErrors     = "ERRORES"
	CodeExists     = "ESTUDIANTE_EXISTENTE"
	CodeSaveFailed = "ERROR_GUARDADO"

	CodeDocumentTypeInvalid   = "TIPO_DOCUMENTO_INVALIDO"
	CodeDocumentNumberInvalid = "NUMERO_DOCUMENTO_INVALIDO"
	CodeCedulaFormat          = "CEDULA_FORMATO_INVALIDO"
	CodeRNCFormat             = "RNC_FORMATO_INVALIDO"
	CodePassportLength        = "PASAPORTE_LONGITUD_INVALIDA"
	CodeFirstNameRequired     = "NOMBRE_REQUERIDO"
	CodeFirstNameFormat       = "NOMBRE_FORMATO_INVALIDO"
	CodeLastNameRequired      = "APELLIDOS_REQUERIDOS"
	CodeLastNameFormat        = "APELLIDOS_FORMATO_INVALIDO"
	CodeCurrencyInvalid       = "MONEDA_INVALIDA"
	CodeConditionInvalid      = "CONDICION_INVALIDA"
	CodeAccountTypeInvalid    = "TIPO_CUENTA_INVALIDO"
	CodeAccountRequired       = "CUENTA_BANCARIA_REQUERIDA"
	CodeAccountFormat         = "CUENTA_BANCARIA_FORMATO_INVALIDO"
	CodeDateRequired          = "FECHA_REQUERIDA"
	CodeDateFormat            = "FECHA_FORMATO_INVALIDO"
)

// Outcome classifies a Result so callers can map it without parsing codes.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalid
	OutcomeConflict
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeConflict:
		return "conflict"
	default:
		return "failure"
	}
}

// Result is the outcome of validating or persisting a record.
type Result struct {
	Outcome     Outcome  `json:"-"`
	Code        string   `json:"codigoRespuesta"`
	Description string   `json:"descripcionRespuesta"`
	Errors      []string `json:"errores,omitempty"`
}

// Valid reports whether the result carries the success code.
func (r Result) Valid() bool {
	return r.Code == CodeOK
}

func success() Result {
	return Result{Outcome: OutcomeOK, Code: CodeOK, Description: "Validación exitosa"}
}

func invalid(code, description string) Result {
	return Result{Outcome: OutcomeInvalid, Code: code, Description: description, Errors: []string{description}}
}

func aggregate(errs []string) Result {
	return Result{
		Outcome:     OutcomeInvalid,
		Code:        CodeErrors,
		Description: "Se encontraron errores en la validación",
		Errors:      errs,
	}
}

func conflict() Result {
	const msg = "Ya existe un estudiante con este número de documento"
	return Result{Outcome: OutcomeConflict, Code: CodeExists, Description: msg, Errors: []string{msg}}
}

func saveFailed() Result {
	const msg = "Error interno guardando el estudiante"
	return Result{Outcome: OutcomeFailure, Code: CodeSaveFailed, Description: msg, Errors: []string{msg}}
}
