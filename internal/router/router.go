package router

import (
	"github.com/labstack/echo/v4"

	"github.com/keisys/teppan-register/internal/handler"
)

// Register wires every route. The till UI drives /v1/cart and
// /v1/checkout; the dashboard reads /v1/analytics.
func Register(e *echo.Echo, reg *handler.RegisterHandler, ana *handler.AnalyticsHandler) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	v1.GET("/cart", reg.GetCart)
	v1.POST("/cart/items", reg.AddItem)
	v1.POST("/cart/bundles", reg.DefineBundle)
	v1.DELETE("/cart", reg.ClearCart)

	v1.POST("/checkout", reg.DoCheckout)

	v1.GET("/analytics/report", ana.Report)
	v1.GET("/analytics/co-purchase", ana.CoPurchase)
}
