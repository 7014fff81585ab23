package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"uepex/internal/account"
	"uepex/internal/logging"
)

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"clave"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"usuario"`
	Role        string    `json:"rol"`
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"mensaje": "Debe ingresar usuario y clave"})
		return
	}

	user, err := h.deps.Accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"mensaje": "Usuario o clave incorrectos"})
			return
		}
		logging.FromContext(ctx).Error("authentication failed", "error", err)
		internalError(c, msgInternal)
		return
	}

	tok, err := h.deps.Tokens.Issue(user.Username, user.Role)
	if err != nil {
		logging.FromContext(ctx).Error("token issue failed", "error", err)
		internalError(c, msgInternal)
		return
	}
	logging.FromContext(ctx).Info("token issued", "usuario", user.Username, "rol", user.Role, "expires_at", tok.ExpiresAt)
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   tok.ExpiresAt.UTC(),
		Username:    user.Username,
		Role:        user.Role,
	})
}
