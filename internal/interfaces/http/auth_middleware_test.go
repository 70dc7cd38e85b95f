package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/access"
	apphttp "github.com/jhoicas/roi-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/roi-admin-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(17)
	testIssuer    = "roi-admin-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"roles": apphttp.GetRoles(c),
			})
		},
	)
	return app
}

// tokenForRoles genera un JWT con los roles indicados.
func tokenForRoles(t *testing.T, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, roles, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → HTTP 200.
func TestRequireRole_ContableAccedeRutaInventario(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, tokenForRoles(t, "resp_adm_contable"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, []interface{}{"resp_adm_contable"}, body["roles"])
}

// admin es comodín: pasa aunque no figure en los roles permitidos.
func TestRequireRole_AdminEsComodin(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, tokenForRoles(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Uno de varios roles del token basta.
func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, tokenForRoles(t, "resp_ti", "resp_adm_contable"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol distinto al requerido → HTTP 403 Forbidden.
func TestRequireRole_RespTIBloqueadoEnInventario(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, tokenForRoles(t, "resp_ti"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Token sin roles → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSinRoles_Retorna401(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, tokenForRoles(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("resp_adm_contable")
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc"} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "INVALID_TOKEN", header)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"roles":   apphttp.GetRoles(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRoles(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID int64    `json:"user_id"`
		Roles  []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, []string{"admin"}, body.Roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CurrentRoles: los roles vigentes vienen de la BD, no del token
// ──────────────────────────────────────────────────────────────────────────────

type fakeRoleSource struct {
	roles []string
	err   error
}

func (f fakeRoleSource) CurrentRoles(_ context.Context, _ int64) ([]string, error) {
	return f.roles, f.err
}

func buildCurrentRolesApp(src apphttp.RoleSource, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.CurrentRoles(src),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestCurrentRoles(t *testing.T) {
	tests := []struct {
		name   string
		src    fakeRoleSource
		status int
	}{
		{"rol vigente", fakeRoleSource{roles: []string{access.RoleRespAdmContable}}, http.StatusOK},
		{"rol revocado", fakeRoleSource{roles: []string{access.RoleRespTI}}, http.StatusForbidden},
		{"sin roles", fakeRoleSource{}, http.StatusUnauthorized},
		{"usuario eliminado", fakeRoleSource{err: domain.ErrUserNotFound}, http.StatusUnauthorized},
		{"usuario inactivo", fakeRoleSource{err: domain.ErrForbidden}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := buildCurrentRolesApp(tt.src, access.RoleRespAdmContable)
			resp := doRequest(t, app, tokenForRoles(t, access.RoleRespAdmContable))
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
