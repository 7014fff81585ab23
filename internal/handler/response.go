package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uepex/internal/logging"
	"uepex/internal/student"
)

// Response codes that only exist at the HTTP boundary.
const (
	CodeOK              = "OK"
	CodeDataRequired    = "DATOS_REQUERIDOS"
	CodeInvalidModel    = "MODELO_INVALIDO"
	CodeNotFound        = "ESTUDIANTE_NO_ENCONTRADO"
	CodeInternal        = "ERROR_INTERNO"
	CodeUnauthenticated = "NO_AUTENTICADO"
	CodeForbidden       = "NO_AUTORIZADO"
	CodeTooManyRequests = "DEMASIADAS_SOLICITUDES"
)

const msgInternal = "Error interno del servidor"

// Envelope is the body of every student endpoint response except listings.
type Envelope struct {
	Student *student.Record `json:"estudiante"`
	Message string          `json:"mensaje"`
	Code    string          `json:"codigo"`
	Errors  []string        `json:"errores"`
}

func failure(message, code string, errs ...string) Envelope {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return Envelope{Message: message, Code: code, Errors: errs}
}

// ErrorBody renders rejections from middleware in the envelope format.
func ErrorBody(status int, message string) any {
	code := CodeInternal
	switch status {
	case http.StatusUnauthorized:
		code = CodeUnauthenticated
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusTooManyRequests:
		code = CodeTooManyRequests
	}
	return failure(message, code)
}

func internalError(c *gin.Context, detail string) {
	c.JSON(http.StatusInternalServerError, failure(msgInternal, CodeInternal, detail))
}

// Recovery turns panics into 500 ERROR_INTERNO responses.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logging.FromContext(c.Request.Context()).Error("panic recovered", "error", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, failure(msgInternal, CodeInternal))
	})
}
