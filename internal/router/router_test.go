package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/handler"
	"stockroom/internal/model"
	"stockroom/internal/service"
)

const testSecret = "router-test-secret"

// stubProductService serves a fixed product list; the router test only cares
// about whether the JWT gate lets the request through.
type stubProductService struct{}

func (stubProductService) List(ctx context.Context) ([]model.Product, error) {
	return []model.Product{{ID: uuid.New(), Name: "Widget", Quantity: 1, Category: "tools"}}, nil
}

func (stubProductService) Create(ctx context.Context, fields service.ProductFields) (*model.Product, error) {
	return &model.Product{ID: uuid.New(), Name: fields.Name}, nil
}

func (stubProductService) Update(ctx context.Context, id uuid.UUID, fields service.ProductFields) (*model.Product, error) {
	return &model.Product{ID: id, Name: fields.Name}, nil
}

func (stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	return "", nil, nil
}

func (stubAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	return "", nil, nil
}

func (stubAuthService) GoogleLogin(ctx context.Context, idToken string) (string, *model.User, error) {
	return "", nil, nil
}

func newTestRouter() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{JWTSecret: testSecret}
	Register(e, cfg,
		handler.NewAuthHandler(stubAuthService{}),
		handler.NewProductHandler(stubProductService{}),
	)
	return e
}

func TestProductRoutesRequireBearerToken(t *testing.T) {
	e := newTestRouter()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"msg":"Invalid token."}`, rec.Body.String())
		})
	}
}

func TestProductRoutesAcceptIssuedToken(t *testing.T) {
	e := newTestRouter()

	token, err := auth.NewTokenIssuer(testSecret).Issue(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
}

func TestAuthRoutesArePublic(t *testing.T) {
	e := newTestRouter()

	// No Authorization header; the route must not hit the JWT gate. The stub
	// returns empty values, so the handler responds 200.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google-login", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}
