package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/server/http/handlers"
	"github.com/polkiloo/freightdesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. events serves the
// push channel at /api/events and may be nil.
func Setup(facade handlers.FreightFacade, events http.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	// compressing would break the websocket upgrade
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events"})))

	authHandler := handlers.NewAuthHandler(facade)
	loadHandler := handlers.NewLoadHandler(facade)
	bidHandler := handlers.NewBidHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	pricingHandler := handlers.NewPricingHandler(facade)
	statusHandler := handlers.NewStatusHandler()

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/statuses", statusHandler.List)
	authed.GET("/statuses/:status", statusHandler.Resolve)
	authed.GET("/loads/:id", loadHandler.Get)
	authed.GET("/loads/:id/bids", bidHandler.List)
	authed.GET("/loads/:id/invoice", invoiceHandler.Get)
	if events != nil {
		authed.GET("/events", gin.WrapH(events))
	}

	shipper := authed.Group("", middleware.RoleRequired(model.RoleShipper))
	shipper.POST("/loads", loadHandler.Submit)
	shipper.GET("/loads", loadHandler.Mine)
	shipper.POST("/loads/:id/invoice/approve", invoiceHandler.Approve)

	carrier := authed.Group("", middleware.RoleRequired(model.RoleCarrier))
	carrier.GET("/marketplace/loads", loadHandler.Marketplace)
	carrier.POST("/loads/:id/bids", bidHandler.Place)
	carrier.POST("/loads/:id/accept", bidHandler.AcceptPosted)
	carrier.POST("/bids/:id/accept-counter", bidHandler.Accept)

	admin := authed.Group("/admin", middleware.RoleRequired(model.RoleAdmin))
	admin.GET("/loads", loadHandler.AdminList)
	admin.POST("/loads/:id/price", loadHandler.Price)
	admin.POST("/loads/:id/actions/:action", loadHandler.Action)
	admin.GET("/loads/:id/quote", pricingHandler.QuoteLoad)
	admin.POST("/loads/:id/invoice/preview", invoiceHandler.Preview)
	admin.POST("/loads/:id/invoice", invoiceHandler.Save)
	admin.POST("/loads/:id/invoice/send", invoiceHandler.Send)
	admin.POST("/pricing/estimate", pricingHandler.Estimate)
	admin.POST("/bids/:id/counter", bidHandler.Counter)
	admin.POST("/bids/:id/accept", bidHandler.Accept)
	admin.POST("/bids/:id/reject", bidHandler.Reject)

	return engine
}
