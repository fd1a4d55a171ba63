package cart

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/models"
	"github.com/buildmart/backend/internal/mykafka"
	"github.com/buildmart/backend/internal/session"
	"github.com/buildmart/backend/internal/wishlist"
)

type WishlistHandler struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Producer *mykafka.Producer
}

func (h *WishlistHandler) load(c echo.Context) (*wishlist.Facade, session.Session, error) {
	sess := session.FromContext(c)

	var store wishlist.Store
	if sess.Authenticated() {
		store = wishlist.NewRemoteStore(h.DB, sess.UserID)
	} else {
		if h.Redis == nil {
			return nil, sess, echo.NewHTTPError(http.StatusServiceUnavailable, "guest wishlist unavailable")
		}
		store = wishlist.NewLocalStore(h.Redis, sess.GuestID)
	}

	f, err := wishlist.Load(c.Request().Context(), store)
	if err != nil {
		return nil, sess, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return f, sess, nil
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	f, _, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f.Items())
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var product models.Product
	if err := h.DB.Preload("Category").First(&product, req.ProductID).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product does not exist")
	}

	f, sess, err := h.load(c)
	if err != nil {
		return err
	}
	if err := f.AddItem(c.Request().Context(), product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, sess, map[string]any{
		"type":      "wishlist_item_added",
		"productID": product.ID,
	})
	return c.JSON(http.StatusOK, f.Items())
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
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
		"type":      "wishlist_item_removed",
		"productID": productID,
	})
	return c.JSON(http.StatusOK, f.Items())
}
