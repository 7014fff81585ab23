package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"uepex/internal/export"
	"uepex/internal/logging"
	"uepex/internal/student"
)

// Sample returns the example record. It needs no token.
func (h *Handler) Sample(c *gin.Context) {
	rec := student.Sample()
	c.JSON(http.StatusOK, Envelope{Student: &rec, Message: "Resultado Exitoso", Code: CodeOK})
}

// Submit validates and stores one record.
func (h *Handler) Submit(c *gin.Context) {
	logger := logging.FromContext(c.Request.Context())

	raw, err := c.GetRawData()
	if err != nil {
		logger.Warn("read body failed", "error", err)
		c.JSON(http.StatusBadRequest, failure("Modelo inválido", CodeInvalidModel, "No se pudo leer el cuerpo de la solicitud"))
		return
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		logger.Warn("empty student body")
		c.JSON(http.StatusBadRequest, failure("Datos del estudiante son requeridos", CodeDataRequired, "El objeto estudiante no puede ser nulo"))
		return
	}

	var req studentRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		msgs := bindingMessages(err)
		logger.Warn("student body rejected", "errors", msgs)
		c.JSON(http.StatusBadRequest, failure("Modelo inválido", CodeInvalidModel, msgs...))
		return
	}

	rec := req.record()
	res := h.deps.Students.Submit(c.Request.Context(), rec)
	switch res.Outcome {
	case student.OutcomeOK:
		c.JSON(http.StatusOK, Envelope{Student: &rec, Message: "Datos recibidos y validados correctamente", Code: CodeOK})
	case student.OutcomeInvalid:
		c.JSON(http.StatusBadRequest, failure("Solicitud inválida", res.Code, res.Errors...))
	case student.OutcomeConflict:
		c.JSON(http.StatusConflict, failure("Error guardando estudiante", res.Code, res.Errors...))
	default:
		c.JSON(http.StatusInternalServerError, failure("Error guardando estudiante", res.Code, res.Errors...))
	}
}

// ListStudents returns every record sorted by name.
func (h *Handler) ListStudents(c *gin.Context) {
	records, err := h.deps.Students.List(c.Request.Context())
	if err != nil {
		internalError(c, msgInternal)
		return
	}
	if records == nil {
		records = []student.Record{}
	}
	logging.FromContext(c.Request.Context()).Info("students listed", "count", len(records))
	c.JSON(http.StatusOK, records)
}

// GetStudent returns one record by document number.
func (h *Handler) GetStudent(c *gin.Context) {
	doc := c.Param("numeroDocumento")
	rec, err := h.deps.Students.Get(c.Request.Context(), doc)
	switch {
	case errors.Is(err, student.ErrNotFound):
		c.JSON(http.StatusNotFound, failure("Estudiante no encontrado", CodeNotFound,
			fmt.Sprintf("No se encontró estudiante con documento %s", doc)))
	case err != nil:
		internalError(c, msgInternal)
	default:
		c.JSON(http.StatusOK, rec)
	}
}

// ExportCSV downloads every record as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	file, err := h.deps.Exports.CSV(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("csv export failed", "error", err)
		internalError(c, "Error generando archivo CSV")
		return
	}
	attachment(c, file)
}

// ExportExcel downloads every record as an XLSX workbook.
func (h *Handler) ExportExcel(c *gin.Context) {
	file, err := h.deps.Exports.XLSX(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("xlsx export failed", "error", err)
		internalError(c, "Error generando archivo Excel")
		return
	}
	attachment(c, file)
}

func attachment(c *gin.Context, file export.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
