package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/handlers"
	"github.com/akingscoffee/coffee_shop/internal/service/token"
)

type Deps struct {
	DB                 *gorm.DB
	HealthHandler      *handlers.HealthHandler
	OrderHandler       *handlers.OrderHandler
	ProductHandler     *handlers.ProductHandler
	ReservationHandler *handlers.ReservationHandler
	ContactHandler     *handlers.ContactHandler
	SearchHandler      *handlers.SearchHandler
	AuthHandler        *handlers.AuthHandler
	TokenService       *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/logout", d.AuthHandler.Logout)
	v1.POST("/auth/refresh", d.AuthHandler.Refresh)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)

	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/delete", d.OrderHandler.CancelOrder)

	v1.POST("/reservations", d.ReservationHandler.CreateReservation)
	v1.POST("/contact", d.ContactHandler.CreateMessage)

	admin := v1.Group("/admin", d.TokenService.RequireStaff)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.GET("/reservations", d.ReservationHandler.GetReservations)
	admin.GET("/contact", d.ContactHandler.GetMessages)
}
