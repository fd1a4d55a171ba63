package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/config"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	A *AuthHandler
	P *ProductHandler
	C *CategoryHandler
	O *OrderHandler
	U *UserHandler

	JWTSecret, RefreshSecret []byte
}

// newTestEnv wires the handlers against an in-memory database. Kafka, Redis
// and Elasticsearch stay nil: the producer is nil-safe and the handlers under
// test do not need the other two.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	jwtSecret := []byte("test-jwt-secret")
	refreshSecret := []byte("test-refresh-secret")

	env := &testEnv{
		T:             t,
		E:             echo.New(),
		DB:            db,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
	}
	env.A = &AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	env.P = &ProductHandler{DB: db}
	env.C = &CategoryHandler{DB: db}
	env.O = &OrderHandler{DB: db}
	env.U = &UserHandler{DB: db}
	return env
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
