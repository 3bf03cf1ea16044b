package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/config"
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/internal/service/order"
	"github.com/akingscoffee/coffee_shop/internal/service/token"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	O  *OrderHandler
	P  *ProductHandler
	R  *ReservationHandler
	CT *ContactHandler
	A  *AuthHandler
	TS *token.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	tokens := &token.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		O:  &OrderHandler{Svc: &order.Service{DB: db}},
		P:  &ProductHandler{DB: db},
		R:  &ReservationHandler{DB: db},
		CT: &ContactHandler{DB: db},
		A:  &AuthHandler{DB: db, Tokens: tokens},
		TS: tokens,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedProduct(name, price string) models.Product {
	env.T.Helper()

	p := models.Product{
		Name:        name,
		Description: name,
		Price:       decimal.RequireFromString(price),
		Category:    "espresso",
		Available:   true,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}
