// Package handler exposes the UEPEX API over gin.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"uepex/internal/account"
	"uepex/internal/auth"
	"uepex/internal/export"
	"uepex/internal/student"
)

// Students is the record service used by the handlers.
type Students interface {
	Submit(ctx context.Context, rec student.Record) student.Result
	List(ctx context.Context) ([]student.Record, error)
	Get(ctx context.Context, documentNumber string) (*student.Record, error)
}

// Exports renders downloadable files.
type Exports interface {
	CSV(ctx context.Context) (export.File, error)
	XLSX(ctx context.Context) (export.File, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*account.User, error)
}

// Checker reports whether a dependency is reachable.
type Checker interface {
	Healthy(ctx context.Context) bool
}

// Deps wires the handler. Redis and Metrics may be nil.
type Deps struct {
	Students Students
	Exports  Exports
	Accounts Authenticator
	Tokens   *auth.Issuer
	DB       Checker
	Redis    Checker
	Metrics  http.Handler
	// LoginLimiter runs before the login handler, usually a stricter rate limit.
	LoginLimiter gin.HandlerFunc
}

// Handler serves the HTTP API.
type Handler struct {
	deps Deps
}

// New builds a handler.
func New(deps Deps) *Handler {
	registerJSONNames()
	return &Handler{deps: deps}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	if h.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.deps.Metrics))
	}

	v1 := r.Group("/api/v1")

	login := []gin.HandlerFunc{h.Login}
	if h.deps.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{h.deps.LoginLimiter}, login...)
	}
	v1.POST("/auth/login", login...)

	uepex := v1.Group("/uepex")
	uepex.GET("", h.Sample)

	bearer := auth.BearerAuth(h.deps.Tokens, ErrorBody)
	uepex.POST("", bearer, auth.RequireRole(account.RoleAdmin, ErrorBody), h.Submit)

	students := uepex.Group("/estudiantes", bearer)
	students.GET("", h.ListStudents)
	students.GET("/exportar-csv", h.ExportCSV)
	students.GET("/exportar-excel", h.ExportExcel)
	students.GET("/:numeroDocumento", h.GetStudent)
}
