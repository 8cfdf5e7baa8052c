package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studyvault/docs"
	"studyvault/internal/config"
	"studyvault/internal/database"
	"studyvault/internal/drive"
	handlers "studyvault/internal/http/handler"
	"studyvault/internal/http/middleware"
	"studyvault/internal/identity"
	"studyvault/internal/otel"
	"studyvault/internal/repository/mongodb"
	"studyvault/internal/service"
)

// @title StudyVault API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	// Initialize the document store connection
	db, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to document store: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.CloseMongo(ctx, db)
	}()

	// Initialize the reusable hierarchical object store client
	drv, err := drive.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Verifier for bearer credentials issued by the identity service
	verifier, err := identity.NewJWTVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize token verifier: %v", err)
	}

	// Initialize repositories and the pipeline service
	resRepo := mongodb.NewResourceMongo(db)
	profileRepo := mongodb.NewProfileMongo(db)
	svc := service.NewResourceService(drv, resRepo, profileRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Per-request tracing spans
	app.Use(otelfiber.Middleware())

	// Prometheus metrics on an isolated registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected dependencies
	handlers.RegisterRoutes(app, database.Pinger{DB: db}, drv, svc, verifier)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
