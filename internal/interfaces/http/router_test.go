package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/application/auth"
	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/application/inventory"
	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/domain/access"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/roi-admin-api/internal/interfaces/http"
)

// apiClient app Fiber completa sobre SQLite con dos usuarios sembrados.
type apiClient struct {
	t        *testing.T
	app      *fiber.App
	users    *sqlite.UserRepo
	contable int64
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.DB()
	productRepo := sqlite.NewProductRepository(db)
	movementRepo := sqlite.NewMovementRepository(db)
	catalogRepo := sqlite.NewCatalogRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)

	for _, slug := range []string{access.RoleAdmin, access.RoleRespAdmContable, access.RoleRespTI} {
		require.NoError(t, roleRepo.Upsert(ctx, &entity.Role{Name: slug, Slug: slug}))
	}
	userUC := usecase.NewUserUseCase(userRepo)
	contable, err := userUC.Create(ctx, usecase.CreateUserInput{Username: "contable", Email: "contable@roi.test", Password: "clave-contable", Roles: []string{access.RoleRespAdmContable}})
	require.NoError(t, err)
	_, err = userUC.Create(ctx, usecase.CreateUserInput{Username: "soporte", Email: "soporte@roi.test", Password: "clave-soporte", Roles: []string{access.RoleRespTI}})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    inventory.NewStockLedger(sqlite.NewTxRunner(store), productRepo, movementRepo, zerolog.Nop()),
		ProductUC: usecase.NewProductUseCase(productRepo, catalogRepo),
		CatalogUC: usecase.NewCatalogUseCase(catalogRepo),
		UserUC:    userUC,
		AuthUC:    auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer}),
		JWTSecret: testJWTSecret,
	})
	return &apiClient{t: t, app: app, users: userRepo, contable: contable.ID}
}

// do envía la petición y decodifica el cuerpo JSON en out (si no es nil).
func (a *apiClient) do(method, path, token string, body any, out any) int {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *apiClient) login(login, password string) string {
	a.t.Helper()
	var out dto.TokenResponse
	status := a.do(http.MethodPost, "/api/auth/token", "", dto.TokenRequest{Login: login, Password: password}, &out)
	require.Equal(a.t, http.StatusOK, status)
	return out.Access
}

func (a *apiClient) productStock(token string, id int64) int64 {
	a.t.Helper()
	var p dto.ProductResponse
	require.Equal(a.t, http.StatusOK, a.do(http.MethodGet, fmt.Sprintf("/api/products/%d", id), token, nil, &p))
	return p.Stock
}

func TestAPI_Token(t *testing.T) {
	api := newAPI(t)

	var errResp dto.ErrorResponse
	status := api.do(http.MethodPost, "/api/auth/token", "", dto.TokenRequest{Login: "contable", Password: "mala"}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errResp.Code)

	var out dto.TokenResponse
	status = api.do(http.MethodPost, "/api/auth/token", "", dto.TokenRequest{Login: "contable@roi.test", Password: "clave-contable"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, out.Access)
	assert.Equal(t, []string{access.RoleRespAdmContable}, out.User.Roles)

	var me dto.UserResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", out.Access, nil, &me))
	assert.Equal(t, "contable", me.Username)
}

func TestAPI_MovementLifecycle(t *testing.T) {
	api := newAPI(t)
	token := api.login("contable", "clave-contable")

	var unit, status dto.CatalogItemResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/units-of-measure", token, dto.CatalogItemRequest{Name: "Unidad", Symbol: "und"}, &unit))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/status-types", token, dto.CatalogItemRequest{Name: "Activo"}, &status))

	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/products", token, dto.CreateProductRequest{
		Code: "TON-001", Name: "Tóner", StockMinimumInitial: 2, UnitMeasureID: unit.ID, StatusTypeID: status.ID,
	}, &product))
	assert.Equal(t, int64(0), product.Stock)

	var mov dto.MovementResponse
	ten := int64(10)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/movements", token, dto.CreateMovementRequest{
		ProductID: product.ID, Direction: "entrada", Quantity: &ten, Reference: "OC-1",
	}, &mov))
	assert.Equal(t, "inflow", mov.Direction)
	assert.Equal(t, int64(10), api.productStock(token, product.ID))

	qty := int64(4)
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, fmt.Sprintf("/api/movements/%d", mov.ID), token, dto.AmendMovementRequest{Quantity: &qty}, &mov))
	assert.Equal(t, int64(4), mov.Quantity)
	assert.Equal(t, int64(4), api.productStock(token, product.ID))

	var errResp dto.ErrorResponse
	one := int64(1)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/movements", token, dto.CreateMovementRequest{
		ProductID: product.ID, Direction: "transfer", Quantity: &one,
	}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	// Sin quantity el alta se rechaza; no se registra un movimiento de 0.
	errResp = dto.ErrorResponse{}
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/movements", token, fiber.Map{
		"product_id": product.ID, "direction": "inflow",
	}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	huge := int64(math.MinInt64)
	errResp = dto.ErrorResponse{}
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/movements", token, dto.CreateMovementRequest{
		ProductID: product.ID, Direction: "outflow", Quantity: &huge,
	}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Equal(t, int64(4), api.productStock(token, product.ID))

	assert.Equal(t, http.StatusConflict, api.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), token, nil, &errResp))
	assert.Equal(t, http.StatusConflict, api.do(http.MethodDelete, fmt.Sprintf("/api/units-of-measure/%d", unit.ID), token, nil, &errResp))

	var list dto.MovementListResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, fmt.Sprintf("/api/movements?product_id=%d", product.ID), token, nil, &list))
	assert.Len(t, list.Items, 1)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, fmt.Sprintf("/api/movements/%d", mov.ID), token, nil, nil))
	assert.Equal(t, int64(0), api.productStock(token, product.ID))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, fmt.Sprintf("/api/movements/%d", mov.ID), token, nil, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), token, nil, nil))
}

func TestAPI_InventoryRequiresRole(t *testing.T) {
	api := newAPI(t)
	token := api.login("soporte", "clave-soporte")

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/movements", token, nil, &errResp))
	assert.Equal(t, "FORBIDDEN", errResp.Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/products", "", nil, &errResp))
}

func TestAPI_RoleChangesApplyToIssuedTokens(t *testing.T) {
	api := newAPI(t)
	token := api.login("contable", "clave-contable")
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/movements", token, nil, &dto.MovementListResponse{}))

	// El mismo token deja de servir en cuanto se revoca el rol en la BD.
	require.NoError(t, api.users.SetRoles(context.Background(), api.contable, []string{access.RoleRespTI}))
	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/movements", token, nil, &errResp))
	assert.Equal(t, "FORBIDDEN", errResp.Code)

	// Y un rol concedido vale sin emitir un token nuevo.
	soporte := api.login("soporte", "clave-soporte")
	u, err := api.users.FindByLogin(context.Background(), "soporte")
	require.NoError(t, err)
	require.NoError(t, api.users.SetRoles(context.Background(), u.ID, []string{access.RoleAdmin}))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/products", soporte, nil, &dto.ProductListResponse{}))
}

func TestAPI_InvalidID(t *testing.T) {
	api := newAPI(t)
	token := api.login("contable", "clave-contable")

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/movements/abc", token, nil, &errResp))
	assert.Equal(t, "INVALID_ID", errResp.Code)
}
