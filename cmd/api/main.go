package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docgate/docs"
	"docgate/internal/auth"
	"docgate/internal/config"
	handlers "docgate/internal/http/handler"
	"docgate/internal/http/middleware"
	"docgate/internal/otel"
	fsrepo "docgate/internal/repository/firestore"
	"docgate/internal/service"
	"docgate/internal/storage"
)

// @title Document Access Gateway
// @version 1.0
// @BasePath /
func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize tracing; OTEL_SDK_DISABLED=true turns it off
	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize Firestore client for the portal project
	fsClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID)
	if err != nil {
		log.Fatalf("failed to connect to firestore: %v", err)
	}
	defer fsClient.Close()

	// Initialize object storage; the provider is selected by configuration
	var objStore storage.ObjectStore
	switch cfg.Storage.Provider {
	case "s3":
		objStore, err = storage.NewS3(cfg.Storage)
	default:
		objStore, err = storage.NewGCS(ctx)
	}
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// ID-token verifier against the Firebase securetoken key set
	verifier, err := auth.NewFirebaseVerifier(cfg.Firebase)
	if err != nil {
		log.Fatalf("failed to initialize token verifier: %v", err)
	}

	// Initialize repositories and the access service
	docRepo := fsrepo.NewDocumentFirestore(fsClient)
	childRepo := fsrepo.NewChildFirestore(fsClient)
	userRepo := fsrepo.NewUserFirestore(fsClient)
	accessSvc := service.NewDocumentAccessService(docRepo, childRepo, userRepo, objStore, cfg.Access, cfg.Storage.DefaultBucket, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	// Origin gate; preflights are answered here
	app.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register HTTP routes with injected dependencies
	handlers.RegisterRoutes(app, verifier, docRepo, accessSvc)

	// Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

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
