package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/buildmart/backend/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"email":    "mona@example.com",
		"name":     "Mona",
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "mona@example.com", user.Email)
	require.Equal(t, "user", user.Role)
	require.NotEmpty(t, user.ID)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, user.ID).Error)
	require.NotEqual(t, "password", stored.PasswordHash)

	// Duplicate email is rejected.
	_, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	err := env.A.Register(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{"email": "mona@example.com"})
	err := env.A.Register(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	reg := map[string]string{"email": "mona@example.com", "password": "password"}
	_, cReg := env.doJSONRequest(http.MethodPost, "/api/v1/register", reg)
	require.NoError(t, env.A.Register(cReg))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", reg)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IsAdmin      bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.False(t, resp.IsAdmin)

	cookies := rec.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = true
	}
	require.True(t, names["accessToken"])
	require.True(t, names["refreshToken"])

	var stored models.RefreshToken
	require.NoError(t, env.DB.Where("token = ?", resp.RefreshToken).First(&stored).Error)
	require.False(t, stored.Revoked)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, cReg := env.doJSONRequest(http.MethodPost, "/api/v1/register",
		map[string]string{"email": "mona@example.com", "password": "password"})
	require.NoError(t, env.A.Register(cReg))

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login",
		map[string]string{"email": "mona@example.com", "password": "wrong"})
	err := env.A.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogOut(t *testing.T) {
	env := newTestEnv(t)

	reg := map[string]string{"email": "mona@example.com", "password": "password"}
	_, cReg := env.doJSONRequest(http.MethodPost, "/api/v1/register", reg)
	require.NoError(t, env.A.Register(cReg))

	recLogin, cLogin := env.doJSONRequest(http.MethodPost, "/api/v1/login", reg)
	require.NoError(t, env.A.Login(cLogin))

	var resp struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &resp))

	ck := &http.Cookie{Name: "refreshToken", Value: resp.RefreshToken, Path: "/"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil, ck)
	require.NoError(t, env.A.LogOut(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.RefreshToken
	require.NoError(t, env.DB.Where("token = ?", resp.RefreshToken).First(&stored).Error)
	require.True(t, stored.Revoked)

	// Without the cookie there is nothing to revoke.
	_, cBare := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil)
	err := env.A.LogOut(cBare)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
