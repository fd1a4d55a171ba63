package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/handlers"
	carthdl "github.com/buildmart/backend/internal/handlers/cart"
	"github.com/buildmart/backend/internal/service"
	"github.com/buildmart/backend/internal/session"
)

type Deps struct {
	DB              *gorm.DB
	JWTSecret       []byte
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	CartHandler     *carthdl.CartHandler
	WishlistHandler *carthdl.WishlistHandler
	OrderHandler    *handlers.OrderHandler
	UserHandler     *handlers.UserHandler
	SearchHandler   *handlers.SearchHandler
	ChatHandler     *handlers.ChatHandler
	TokenService    *service.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/products/slug/:slug", d.ProductHandler.GetProductBySlug)
	v1.GET("/categories", d.CategoryHandler.GetCategories)
	v1.GET("/categories/:id", d.CategoryHandler.GetCategory)
	v1.GET("/search", d.SearchHandler.Search)

	v1.POST("/chat", d.ChatHandler.Chat)

	// Cart and wishlist work for guests too; the session middleware binds
	// each request to either the user id or a guest cookie.
	shop := v1.Group("", session.Middleware(d.JWTSecret))
	shop.GET("/cart", d.CartHandler.GetCart)
	shop.POST("/cart", d.CartHandler.AddToCart)
	shop.PATCH("/cart/:productID", d.CartHandler.UpdateQuantity)
	shop.DELETE("/cart/:productID", d.CartHandler.RemoveFromCart)
	shop.DELETE("/cart", d.CartHandler.ClearCart)
	shop.GET("/wishlist", d.WishlistHandler.GetWishlist)
	shop.POST("/wishlist", d.WishlistHandler.AddToWishlist)
	shop.DELETE("/wishlist/:productID", d.WishlistHandler.RemoveFromWishlist)

	orders := v1.Group("/orders", d.TokenService.AutoRefreshMiddleware)
	orders.POST("", d.OrderHandler.MakeOrder)
	orders.GET("", d.OrderHandler.GetMyOrders)
	orders.GET("/:id", d.OrderHandler.GetMyOrder)

	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CategoryHandler.PatchCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)
	admin.GET("/orders", d.OrderHandler.GetAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)
	admin.GET("/users", d.UserHandler.GetUsers)
	admin.POST("/users/:id/make-admin", d.UserHandler.MakeAdmin)
}
