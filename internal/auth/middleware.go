package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"uepex/internal/logging"
)

const claimsKey = "claims"

// ErrorBody renders the JSON body for a rejected request.
type ErrorBody func(status int, message string) any

// BearerAuth enforces bearer JWT tokens signed with HS256.
func BearerAuth(issuer *Issuer, body ErrorBody) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < len("bearer ") || !strings.EqualFold(authz[:len("bearer ")], "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, body(http.StatusUnauthorized, "Token de acceso requerido"))
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, body(http.StatusUnauthorized, "Token inválido o expirado"))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not role.
// It must run after BearerAuth.
func RequireRole(role string, body ErrorBody) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, body(http.StatusUnauthorized, "Token de acceso requerido"))
			return
		}
		if claims.Role != role {
			logging.FromContext(c.Request.Context()).Warn("role not allowed", "usuario", claims.Subject, "rol", claims.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, body(http.StatusForbidden, "No autorizado"))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by BearerAuth.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}
