// internal/router/router.go
package router

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/javajoker/certview/internal/config"
	"github.com/javajoker/certview/internal/handlers"
	"github.com/javajoker/certview/internal/middleware"
	"github.com/javajoker/certview/internal/services"
	"github.com/javajoker/certview/internal/views"
)

// Dependencies are the collaborators the routes are wired to. Lookup and
// Delivery are built from DB and Config when left nil.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *logrus.Logger
	Lookup   services.ProductLookup
	Delivery services.DocumentDelivery
}

func Initialize(ctx context.Context, deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// Initialize services
	lookup := deps.Lookup
	if lookup == nil {
		lookup = services.NewProductService(deps.DB, cfg.Database.PublicView)
	}
	delivery := deps.Delivery
	if delivery == nil {
		storageService, err := services.NewStorageService(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		delivery = storageService
	}
	resolver := services.NewProductResolver(lookup, logger)

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}
	site := views.Site{Name: cfg.Site.Name, HomeURL: cfg.Site.HomeURL}

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(site)
	productHandler := handlers.NewProductHandler(resolver, delivery, renderer, site, cfg.Server.LoadingIndicatorDelay(), logger)
	verificationHandler := handlers.NewVerificationHandler(resolver)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Initialize Gin router
	r := gin.New()
	r.SetHTMLTemplate(renderer.Template())

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.I18nMiddleware())

	// Health check and metrics
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		public.Use(limiter.Middleware())
	}

	// Pages
	{
		public.GET("/", homeHandler.Home)
		public.GET("/lookup", homeHandler.Lookup)

		products := public.Group("/products")
		{
			products.GET("/", productHandler.ShowProduct)
			products.GET("/:publicId", productHandler.ShowProduct)
			products.GET("/:publicId/qr", productHandler.OpenQRCode)
			products.GET("/:publicId/documents/:kind/download", productHandler.DownloadDocument)
			products.GET("/:publicId/documents/:kind/open", productHandler.OpenDocument)
		}
	}

	r.NoRoute(productHandler.NotFound)

	// API v1 routes
	v1 := public.Group("/v1")
	v1.Use(middleware.CORS())
	{
		v1.GET("/public/products/:publicId", verificationHandler.GetPublicProduct)
		v1.OPTIONS("/public/products/:publicId", func(c *gin.Context) {})
	}

	return r, nil
}
