package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-dashboard-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-dashboard-api/pkg/jwt"
)

// ── Helpers de test ──────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "pos-dashboard-test"
	testExpMin    = 60
)

// tokenForRole genera un header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// protectedApp expone GET /protected detrás de AuthMiddleware + RequireRole y devuelve los locals.
func protectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

// ── RequireRole ──────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{
			name:    "admin accede al reporte",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return tokenForRole(t, entity.RoleAdmin) },
			status:  http.StatusOK,
		},
		{
			name:    "bodeguero en ruta admin o bodeguero",
			allowed: []string{entity.RoleAdmin, entity.RoleBodeguero},
			header:  func(t *testing.T) string { return tokenForRole(t, entity.RoleBodeguero) },
			status:  http.StatusOK,
		},
		{
			name:    "vendedor bloqueado en ruta admin",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return tokenForRole(t, entity.RoleVendedor) },
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
		},
		{
			name:    "token sin rol",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return tokenForRole(t, "") },
			status:  http.StatusUnauthorized,
			code:    "MISSING_ROLE",
		},
		{
			name:    "sin header Authorization",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "" },
			status:  http.StatusUnauthorized,
			code:    "MISSING_TOKEN",
		},
		{
			name:    "esquema distinto a Bearer",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "Basic dXNlcjpwYXNz" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
		{
			name:    "token malformado",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "Bearer token.invalido.aqui" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := protectedApp(tc.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.code, body.Code)
			}
		})
	}
}

// ── AuthMiddleware: extracción de claims ─────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleVendedor))
	resp, err := protectedApp(entity.RoleVendedor).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := protectedApp(entity.RoleAdmin).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
