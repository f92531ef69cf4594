// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vikrant8989/Drop-Go/internal/http/handlers"
	"github.com/vikrant8989/Drop-Go/internal/http/middleware"
	"github.com/vikrant8989/Drop-Go/internal/infra"
	"github.com/vikrant8989/Drop-Go/internal/modules/order"
	"github.com/vikrant8989/Drop-Go/internal/modules/store"
)

type RouterDeps struct {
	Order    *order.Service
	Store    *store.Service
	Places   handlers.PlaceSearcher
	Verifier infra.TokenVerifier
	Log      *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	orderHandler := handlers.NewOrderHandler(deps.Order)
	storeHandler := handlers.NewStoreHandler(deps.Store, deps.Order)
	placesHandler := handlers.NewPlacesHandler(deps.Places, deps.Log)

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)
	api.PUT("/orders/:id", orderHandler.Edit)

	api.POST("/stores", storeHandler.Create)
	api.GET("/stores", storeHandler.ListAll)
	api.GET("/stores/:id", storeHandler.Get)
	api.GET("/stores/:id/orders", storeHandler.Orders)

	// Search lives under its own prefix so the :id routes stay unambiguous.
	api.GET("/search/city", storeHandler.ListByCity)
	api.GET("/search/nearby", storeHandler.Nearby)

	api.GET("/places/suggest", placesHandler.Suggest)

	return r
}
