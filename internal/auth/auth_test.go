package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef-test"

func testIssuer() *Issuer {
	return NewIssuer("uepex", "uepex-clients", testKey, 15*time.Minute)
}

func TestIssueAndParse(t *testing.T) {
	iss := testIssuer()

	tok, err := iss.Issue("admin", "Administrador")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.ExpiresAt, 5*time.Second)

	claims, err := iss.Parse(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "Administrador", claims.Role)
	assert.Equal(t, "uepex", claims.Issuer)
	assert.Equal(t, []string{"uepex-clients"}, []string(claims.Audience))
	assert.Len(t, claims.ID, 36)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	iss := testIssuer()
	a, err := iss.Issue("admin", "Administrador")
	require.NoError(t, err)
	b, err := iss.Issue("admin", "Administrador")
	require.NoError(t, err)

	ca, _ := iss.Parse(a.AccessToken)
	cb, _ := iss.Parse(b.AccessToken)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_Rejects(t *testing.T) {
	good := testIssuer()
	tok, err := good.Issue("admin", "Administrador")
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *Issuer
		token  string
	}{
		{"wrong key", NewIssuer("uepex", "uepex-clients", "another-signing-key", time.Minute), tok.AccessToken},
		{"wrong issuer", NewIssuer("other", "uepex-clients", testKey, time.Minute), tok.AccessToken},
		{"wrong audience", NewIssuer("uepex", "other", testKey, time.Minute), tok.AccessToken},
		{"garbage", good, "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Parse(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestParse_Expired(t *testing.T) {
	iss := testIssuer()
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := iss.Issue("admin", "Administrador")
	require.NoError(t, err)

	_, err = testIssuer().Parse(tok.AccessToken)
	assert.Error(t, err)
}

func errBody(status int, message string) any {
	return gin.H{"status": status, "mensaje": message}
}

func newRouter(iss *Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, claims.Subject)
	}
	r.GET("/any", BearerAuth(iss, errBody), ok)
	r.GET("/admin", BearerAuth(iss, errBody), RequireRole("Administrador", errBody), ok)
	return r
}

func do(r http.Handler, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuth(t *testing.T) {
	iss := testIssuer()
	r := newRouter(iss)
	tok, err := iss.Issue("lector", "Usuario")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "Bearer broken").Code)

	w := do(r, "/any", "bearer "+tok.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lector", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	iss := testIssuer()
	r := newRouter(iss)
	user, _ := iss.Issue("lector", "Usuario")
	admin, _ := iss.Issue("admin", "Administrador")

	w := do(r, "/admin", "Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "No autorizado")

	assert.Equal(t, http.StatusOK, do(r, "/admin", "Bearer "+admin.AccessToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}
