package cart

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	corecart "github.com/buildmart/backend/internal/cart"
	"github.com/buildmart/backend/internal/models"
	"github.com/buildmart/backend/internal/mykafka"
	"github.com/buildmart/backend/internal/session"
)

// CartHandler serves the storefront cart. Each request builds a Facade bound
// to the session's authoritative store: Postgres rows for a logged-in user,
// the Redis mirror for a guest.
type CartHandler struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Producer *mykafka.Producer
}

type cartResponse struct {
	Items     []corecart.Item `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	Total     float64         `json:"total"`
	ItemCount uint            `json:"item_count"`
}

func (h *CartHandler) load(c echo.Context) (*corecart.Facade, session.Session, error) {
	sess := session.FromContext(c)

	var store corecart.Store
	if sess.Authenticated() {
		store = corecart.NewRemoteStore(h.DB, sess.UserID)
	} else {
		if h.Redis == nil {
			return nil, sess, echo.NewHTTPError(http.StatusServiceUnavailable, "guest cart unavailable")
		}
		store = corecart.NewLocalStore(h.Redis, sess.GuestID)
	}

	f, err := corecart.Load(c.Request().Context(), store)
	if err != nil {
		return nil, sess, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return f, sess, nil
}

func (h *CartHandler) respond(c echo.Context, f *corecart.Facade) error {
	return c.JSON(http.StatusOK, cartResponse{
		Items:     f.Items(),
		Subtotal:  f.Subtotal(),
		Total:     f.Total(),
		ItemCount: f.ItemCount(),
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	f, _, err := h.load(c)
	if err != nil {
		return err
	}
	return h.respond(c, f)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product does not exist")
	}
	// Availability is checked here at the boundary; the facade itself
	// does not look at stock.
	if product.StockQuantity == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product is out of stock")
	}

	f, sess, err := h.load(c)
	if err != nil {
		return err
	}
	if err := f.AddItem(c.Request().Context(), product, req.Quantity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, sess, map[string]any{
		"type":      "cart_item_added",
		"productID": product.ID,
	})
	return h.respond(c, f)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	f, sess, err := h.load(c)
	if err != nil {
		return err
	}
	if err := f.UpdateQuantity(c.Request().Context(), uint(productID), req.Quantity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, sess, map[string]any{
		"type":      "cart_quantity_updated",
		"productID": productID,
		"quantity":  req.Quantity,
	})
	return h.respond(c, f)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	f, sess, err := h.load(c)
	if err != nil {
		return err
	}
	if err := f.RemoveItem(c.Request().Context(), uint(productID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, sess, map[string]any{
		"type":      "cart_item_removed",
		"productID": productID,
	})
	return h.respond(c, f)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	f, sess, err := h.load(c)
	if err != nil {
		return err
	}
	if err := f.Clear(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, sess, map[string]any{
		"type": "cart_cleared",
	})
	return h.respond(c, f)
}
