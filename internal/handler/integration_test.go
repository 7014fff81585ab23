package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uepex/internal/account"
	"uepex/internal/export"
	"uepex/internal/store"
	"uepex/internal/student"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	db, err := store.NewDB(ctx, "sqlite://"+filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	students := student.NewRepository(db.Client)
	require.NoError(t, students.EnsureSchema(ctx))
	users := account.NewRepository(db.Client)
	require.NoError(t, users.EnsureSchema(ctx))

	accounts := account.NewService(users, nil)
	_, err = accounts.EnsureUser(ctx, "admin", "admin1234", account.RoleAdmin)
	require.NoError(t, err)
	_, err = accounts.EnsureUser(ctx, "lector", "lector1234", account.RoleUser)
	require.NoError(t, err)

	studentSvc := student.NewService(nil, students, nil, nil)
	return newEngine(Deps{
		Students: studentSvc,
		Exports:  export.NewService(studentSvc, nil, nil, nil),
		Accounts: accounts,
		DB:       db,
	})
}

func login(t *testing.T, api http.Handler, user, password string) string {
	t.Helper()
	w := request(api, http.MethodPost, "/api/v1/auth/login", "", `{"usuario":"`+user+`","clave":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return "Bearer " + resp.AccessToken
}

func TestAPI_RegistrationFlow(t *testing.T) {
	api := newAPI(t)
	admin := login(t, api, "ADMIN", "admin1234")
	reader := login(t, api, "lector", "lector1234")

	w := request(api, http.MethodPost, "/api/v1/uepex", reader, sampleJSON(t, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(api, http.MethodPost, "/api/v1/uepex", admin, sampleJSON(t, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, CodeOK, decodeEnvelope(t, w).Code)

	w = request(api, http.MethodPost, "/api/v1/uepex", admin, sampleJSON(t, nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, student.CodeExists, decodeEnvelope(t, w).Code)

	bad := sampleJSON(t, func(m map[string]any) {
		m["numeroDocumento"] = "123"
		m["cuentaBancariaEstudiante"] = ""
	})
	w = request(api, http.MethodPost, "/api/v1/uepex", admin, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, student.CodeErrors, env.Code)
	assert.Equal(t, []string{
		"La cédula debe tener 11 dígitos numéricos",
		"Se requiere cuenta bancaria",
	}, env.Errors)

	w = request(api, http.MethodGet, "/api/v1/uepex/estudiantes", reader, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []student.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, []student.Record{student.Sample()}, listed)

	w = request(api, http.MethodGet, "/api/v1/uepex/estudiantes/50231212122", reader, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(api, http.MethodGet, "/api/v1/uepex/estudiantes/exportar-csv", reader, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "\r\n"))
	assert.Contains(t, w.Body.String(), "25/10/2025 14:00")

	w = request(api, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_WrongPassword(t *testing.T) {
	api := newAPI(t)

	w := request(api, http.MethodPost, "/api/v1/auth/login", "", `{"usuario":"admin","clave":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
