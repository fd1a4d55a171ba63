package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/buildmart/backend/internal/models"
)

func seedCheckout(t *testing.T, env *testEnv) {
	t.Helper()

	sale := 250.0
	require.NoError(t, env.DB.Create(&[]models.Product{
		{ID: 1, Name: "Aquaseal Coat", Slug: "aquaseal-coat", Price: 230, StockQuantity: 10},
		{ID: 2, Name: "Repair Mortar", Slug: "repair-mortar", Price: 300, SalePrice: &sale, StockQuantity: 5},
	}).Error)
	require.NoError(t, env.DB.Create(&[]models.CartItem{
		{UserID: 7, ProductID: 1, Quantity: 2},
		{UserID: 7, ProductID: 2, Quantity: 1},
	}).Error)
}

func TestMakeOrder(t *testing.T) {
	env := newTestEnv(t)
	seedCheckout(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", nil)
	c.Set("userID", uint(7))
	require.NoError(t, env.O.MakeOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// 230*2 plus the sale price 250, then the flat shipping fee.
	require.Equal(t, 710.0, resp.Subtotal)
	require.Equal(t, 50.0, resp.ShippingFee)
	require.Equal(t, 760.0, resp.Total)
	require.Equal(t, "pending", resp.Status)
	require.Len(t, resp.Items, 2)

	// Checkout empties the cart.
	var remaining int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&remaining).Error)
	require.Zero(t, remaining)
}

func TestMakeOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", nil)
	c.Set("userID", uint(7))
	err := env.O.MakeOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMakeOrderRequiresUser(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", nil)
	err := env.O.MakeOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestGetMyOrderScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	seedCheckout(t, env)

	recOrder, cOrder := env.doJSONRequest(http.MethodPost, "/api/v1/orders", nil)
	cOrder.Set("userID", uint(7))
	require.NoError(t, env.O.MakeOrder(cOrder))
	require.Equal(t, http.StatusOK, recOrder.Code)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	c.Set("userID", uint(7))
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.GetMyOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Someone else's order id reads as not found.
	_, cOther := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	cOther.Set("userID", uint(8))
	cOther.SetParamNames("id")
	cOther.SetParamValues("1")
	err := env.O.GetMyOrder(cOther)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Order{ID: 1, UserID: 7, Subtotal: 100, ShippingFee: 50, Total: 150, Status: "pending"}).Error)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{"status": "shipped"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.UpdateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Order
	require.NoError(t, env.DB.First(&stored, 1).Error)
	require.Equal(t, "shipped", stored.Status)

	_, cBad := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{"status": "teleported"})
	cBad.SetParamNames("id")
	cBad.SetParamValues("1")
	err := env.O.UpdateOrderStatus(cBad)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
