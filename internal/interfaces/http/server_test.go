package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/auth"
	"github.com/jhoicas/gestor-inventario/internal/application/inventory"
	"github.com/jhoicas/gestor-inventario/internal/application/usecase"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/infrastructure/csvexport"
	apphttp "github.com/jhoicas/gestor-inventario/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestor-inventario/pkg/jwt"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
	"github.com/jhoicas/gestor-inventario/pkg/validator"
)

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "gestor-inventario-test"
	rootAdminEmail = "admin@utm.edu.ec"
	testPassword   = "admin123"
)

// testServer aplicación completa sobre repositorios en memoria.
type testServer struct {
	app     *fiber.App
	db      *memDB
	limiter *memRateLimitStore

	adminID, userID          string
	oficinaID, electronicaID string
	laptopID, papelID        string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := newMemDB()
	s := &testServer{db: db, limiter: newMemRateLimitStore()}
	s.seed(t)

	userRepo := &memUserRepo{db: db}
	categoryRepo := &memCategoryRepo{db: db}
	productRepo := &memProductRepo{db: db}
	movementRepo := &memMovementRepo{db: db}

	resp := apphttp.NewResponder(logger.Nop(), validator.New(), false)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(resp)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo, productRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo, categoryRepo),
		MovementUC:     inventory.NewMovementUseCase(memTxRunner{db: db}, movementRepo, nil),
		UserUC:         usecase.NewUserUseCase(userRepo, rootAdminEmail),
		ReportUC:       analytics.NewReportUseCase(&memReportRepo{db: db}, productRepo, movementRepo, csvexport.NewEncoder(), nil),
		Responder:      resp,
		Logger:         logger.Nop(),
		RateLimitStore: s.limiter,
		RateLimit:      apphttp.RateLimitPolicy(60, 20, 3),
	})
	s.app = app
	return s
}

func (s *testServer) seed(t *testing.T) {
	t.Helper()
	hash, err := usecase.HashPassword(testPassword)
	require.NoError(t, err)
	now := time.Now()

	s.adminID, s.userID = uuid.NewString(), uuid.NewString()
	s.db.users[s.adminID] = &entity.User{ID: s.adminID, Name: "Administrador", Email: rootAdminEmail,
		PasswordHash: hash, Role: entity.RoleAdmin, Active: true, CreatedAt: now, UpdatedAt: now}
	s.db.users[s.userID] = &entity.User{ID: s.userID, Name: "Operador", Email: "operador@utm.edu.ec",
		PasswordHash: hash, Role: entity.RoleUsuario, Active: true, CreatedAt: now, UpdatedAt: now}

	s.oficinaID, s.electronicaID = uuid.NewString(), uuid.NewString()
	s.db.categories[s.oficinaID] = &entity.Category{ID: s.oficinaID, Name: "Oficina", Active: true, CreatedAt: now, UpdatedAt: now}
	s.db.categories[s.electronicaID] = &entity.Category{ID: s.electronicaID, Name: "Electrónica", Active: true, CreatedAt: now, UpdatedAt: now}

	s.laptopID, s.papelID = uuid.NewString(), uuid.NewString()
	s.db.products[s.laptopID] = &entity.Product{ID: s.laptopID, Name: "Laptop Dell", Description: "Laptop Dell Inspiron 15",
		CategoryID: s.electronicaID, Price: decimal.RequireFromString("850.00"), Stock: 25, MinStock: 5,
		Active: true, CreatedAt: now, UpdatedAt: now}
	s.db.products[s.papelID] = &entity.Product{ID: s.papelID, Name: "Papel Bond", Description: "Resma A4 500 hojas",
		CategoryID: s.oficinaID, Price: decimal.RequireFromString("4.50"), Stock: 2, MinStock: 10,
		Active: true, CreatedAt: now.Add(time.Minute), UpdatedAt: now}
}

// token firma un JWT para el usuario sembrado indicado.
func (s *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	u := s.db.users[userID]
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Email, u.Role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// envelope respuesta JSON común de la API.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
	Details []string `json:"details"`
}

// do ejecuta una petición y decodifica el envoltorio.
func (s *testServer) do(t *testing.T, method, path, authHeader string, body interface{}) (int, envelope) {
	t.Helper()
	res := s.raw(t, method, path, authHeader, body)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "respuesta no es JSON: %s", raw)
	return res.StatusCode, env
}

func (s *testServer) raw(t *testing.T, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	res, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return res
}
