package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ecofinds/internal/adapter/api"
	"ecofinds/internal/adapter/api/handler"
	"ecofinds/internal/adapter/api/middleware"
	"ecofinds/internal/adapter/repository"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/infrastructure/auth"
	"ecofinds/internal/usecase"
	"ecofinds/pkg/logger"
	"ecofinds/pkg/response"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type memoryImages struct{}

func (memoryImages) Upload(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	_, err := io.Copy(io.Discard, file)
	return "https://images.test/" + folder + "/1.png", err
}

func (memoryImages) Delete(ctx context.Context, fileURL string) error { return nil }

func (memoryImages) Close() error { return nil }

func newServer(t *testing.T, images service.ImageStorage) *echo.Echo {
	t.Helper()

	repos := repository.NewMemoryRepositories()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTManager("router-test-secret", time.Hour)

	categoryUseCase := usecase.NewCategoryUseCase(repos.Categories)
	require.NoError(t, categoryUseCase.SeedDefaults(context.Background()))

	handler.Setup(
		usecase.NewAuthUseCase(repos.Users, hasher, tokens),
		usecase.NewUserUseCase(repos, hasher),
		categoryUseCase,
		usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Users),
		usecase.NewCartUseCase(repos.Carts, repos.Products),
		usecase.NewOrderUseCase(repos.Orders, repos.Carts, repos.Products),
		usecase.NewImageUseCase(images),
	)
	handler.SetupHealthHandler("memory", nil)

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	UseMiddleware(e, []string{"*"}, "2M", "6M")
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	Setup(e, middleware.NewAuthMiddleware(tokens), middleware.NewRateLimiter(0))
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func register(t *testing.T, e *echo.Echo, email, username string) (token, userID string) {
	t.Helper()
	code, env := call(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	return result.Token, result.User.ID
}

func TestRootAndHealth(t *testing.T) {
	e := newServer(t, nil)

	for path, want := range map[string]string{"/": "EcoFinds API running", "/health": "ok"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), want)
	}
}

func TestAuthFlow(t *testing.T) {
	e := newServer(t, nil)
	token, userID := register(t, e, "Ana@Example.com", "ana")

	code, env := call(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": "another1", "username": "ana2",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User with this email already exists", env.Error.Message)

	code, env = call(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = call(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Error.Message)

	code, env = call(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "secret123", "username": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = call(t, e, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), userID)
	assert.NotContains(t, string(env.Data), "secret123")

	code, _ = call(t, e, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, e, http.MethodGet, "/api/auth/me", "forged.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMarketplaceFlow(t *testing.T) {
	e := newServer(t, nil)
	sellerToken, _ := register(t, e, "seller@example.com", "seller")
	buyerToken, _ := register(t, e, "buyer@example.com", "buyer")

	code, env := call(t, e, http.MethodPost, "/api/products", sellerToken, map[string]interface{}{
		"title":       "Desk",
		"description": "Solid oak desk",
		"price":       1500,
		"category":    "Furniture",
		"condition":   "good",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var desk struct {
		ID    string `json:"id"`
		Price string `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &desk))
	assert.Equal(t, "1500", desk.Price)

	code, env = call(t, e, http.MethodPost, "/api/products", sellerToken, map[string]interface{}{
		"title": "Free desk", "price": 0, "category": "Furniture", "condition": "good",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = call(t, e, http.MethodGet, "/api/products?q=OAK&category=Furniture", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	code, _ = call(t, e, http.MethodPut, "/api/products/"+desk.ID, buyerToken, map[string]interface{}{
		"title": "Stolen", "price": 1, "category": "Furniture", "condition": "fair",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, e, http.MethodPost, "/api/cart/items", sellerToken, map[string]string{"product_id": desk.ID})
	assert.Equal(t, http.StatusBadRequest, code)

	for i := 0; i < 2; i++ {
		code, env = call(t, e, http.MethodPost, "/api/cart/items", buyerToken, map[string]string{"product_id": desk.ID})
		require.Equal(t, http.StatusOK, code, env.Error)
	}

	code, env = call(t, e, http.MethodGet, "/api/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var cart struct {
		Total     string `json:"total"`
		ItemCount int    `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, "3000", cart.Total)
	assert.Equal(t, 1, cart.ItemCount)

	code, env = call(t, e, http.MethodPost, "/api/orders/checkout", buyerToken, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
	var order struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "3000", order.Total)

	code, env = call(t, e, http.MethodPost, "/api/orders/checkout", buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = call(t, e, http.MethodGet, "/api/orders/purchases", buyerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var purchases []struct {
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	require.Len(t, purchases, 1)
	assert.Equal(t, "1500", purchases[0].Price)
	assert.Equal(t, 2, purchases[0].Quantity)

	code, _ = call(t, e, http.MethodGet, "/api/orders/"+order.ID, sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = call(t, e, http.MethodGet, "/api/user/dashboard", buyerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		PurchaseCount int   `json:"purchase_count"`
		CartItemCount int64 `json:"cart_item_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.PurchaseCount)
	assert.Zero(t, stats.CartItemCount)

	code, _ = call(t, e, http.MethodDelete, "/api/products/"+desk.ID, sellerToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, e, http.MethodGet, "/api/products/"+desk.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProfileRoutes(t *testing.T) {
	e := newServer(t, nil)
	token, _ := register(t, e, "ana@example.com", "ana")

	code, env := call(t, e, http.MethodPut, "/api/user/profile", token, map[string]string{
		"username": "ana.l", "full_name": "Ana Lima", "phone": "555-0101",
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Contains(t, string(env.Data), "Ana Lima")

	code, _ = call(t, e, http.MethodPut, "/api/user/password", token, map[string]string{
		"current_password": "nope", "new_password": "changed1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, e, http.MethodPut, "/api/user/password", token, map[string]string{
		"current_password": "secret123", "new_password": "changed1",
	})
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "changed1",
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	e := newServer(t, nil)

	code, env := call(t, e, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func uploadImage(t *testing.T, e *echo.Echo, token string, data []byte) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/images", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func pngOfSize(n int) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, n)...)
}

func TestImageUpload(t *testing.T) {
	png := pngOfSize(64)

	e := newServer(t, memoryImages{})
	token, userID := register(t, e, "ana@example.com", "ana")

	code, env := uploadImage(t, e, token, png)
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.Contains(t, string(env.Data), "products/"+userID)

	code, _ = uploadImage(t, e, token, append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 64)...))
	assert.Equal(t, http.StatusCreated, code)

	code, _ = uploadImage(t, e, token, []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, code)

	unconfigured := newServer(t, nil)
	token, _ = register(t, unconfigured, "ana@example.com", "ana")
	code, env = uploadImage(t, unconfigured, token, png)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
}

func TestImageUploadAboveJSONBodyLimit(t *testing.T) {
	e := newServer(t, memoryImages{})
	token, _ := register(t, e, "ana@example.com", "ana")

	code, env := uploadImage(t, e, token, pngOfSize(3<<20))
	assert.Equal(t, http.StatusCreated, code, env.Error)

	code, env = uploadImage(t, e, token, pngOfSize(7<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
}

func TestJSONBodyLimit(t *testing.T) {
	e := newServer(t, nil)

	code, env := call(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
		"username": strings.Repeat("a", 3<<20),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
}
