package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mistlabs/gamestore/internal/api/handlers"
	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/cache"
	"github.com/mistlabs/gamestore/internal/config"
	"github.com/mistlabs/gamestore/internal/health"
	"github.com/mistlabs/gamestore/internal/metrics"
	repository "github.com/mistlabs/gamestore/internal/repositories"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/mistlabs/gamestore/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracing := setupTracing(cfg)
	defer shutdownTracing()

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	gameCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Game, gameCache, cfg.Cache.GameTTL)
	gameHandler := handlers.NewGameHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, repos.Game, repos.Purchase)
	cartHandler := handlers.NewCartHandler(cartService)
	purchaseService := service.NewPurchaseService(repos.Purchase, repos.Cart, repos.User, repos.Wishlist, emailService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	promotionService := service.NewPromotionService(repos.Promotion, repos.Game)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	reviewService := service.NewReviewService(repos.Review, repos.Game, repos.Purchase)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistService := service.NewWishlistService(repos.Wishlist, repos.Game, repos.Purchase)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := http.NewServeMux()

	// auth
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	// storefront
	routerMux.HandleFunc("GET /api/v1/games", gameHandler.SearchGames())
	routerMux.HandleFunc("GET /api/v1/games/{id}", gameHandler.GetGame())
	routerMux.HandleFunc("GET /api/v1/games/{id}/reviews", reviewHandler.ListGameReviews())
	routerMux.HandleFunc("GET /api/v1/games/{id}/rating", reviewHandler.GetRatingSummary())

	// cart and checkout
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("GET /api/v1/cart/count", authMiddleware.Authenticate(cartHandler.ItemCount()))
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.AddToCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveFromCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(purchaseHandler.Checkout()))

	// library
	routerMux.HandleFunc("GET /api/v1/library", authMiddleware.Authenticate(purchaseHandler.GetLibrary()))
	routerMux.HandleFunc("GET /api/v1/purchases", authMiddleware.Authenticate(purchaseHandler.ListPurchases()))

	// wishlist
	routerMux.HandleFunc("GET /api/v1/wishlist", authMiddleware.Authenticate(wishlistHandler.GetWishlist()))
	routerMux.HandleFunc("POST /api/v1/wishlist/{id}", authMiddleware.Authenticate(wishlistHandler.AddToWishlist()))
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{id}", authMiddleware.Authenticate(wishlistHandler.RemoveFromWishlist()))

	// reviews
	routerMux.HandleFunc("POST /api/v1/reviews", authMiddleware.Authenticate(reviewHandler.AddReview()))
	routerMux.HandleFunc("PUT /api/v1/reviews/{id}", authMiddleware.Authenticate(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("DELETE /api/v1/reviews/{id}", authMiddleware.Authenticate(reviewHandler.DeleteReview()))

	// admin back office
	routerMux.HandleFunc("POST /api/v1/admin/games", authMiddleware.Authenticate(authMiddleware.RequireAdmin(gameHandler.CreateGame())))
	routerMux.HandleFunc("PUT /api/v1/admin/games/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(gameHandler.UpdateGame())))
	routerMux.HandleFunc("POST /api/v1/admin/games/{id}/deactivate", authMiddleware.Authenticate(authMiddleware.RequireAdmin(gameHandler.DeactivateGame())))
	routerMux.HandleFunc("POST /api/v1/admin/games/{id}/reactivate", authMiddleware.Authenticate(authMiddleware.RequireAdmin(gameHandler.ReactivateGame())))
	routerMux.HandleFunc("GET /api/v1/admin/promotions", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.ListPromotions())))
	routerMux.HandleFunc("POST /api/v1/admin/promotions", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.CreatePromotion())))
	routerMux.HandleFunc("GET /api/v1/admin/promotions/active-count", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.ActivePromotionCount())))
	routerMux.HandleFunc("GET /api/v1/admin/promotions/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.GetPromotion())))
	routerMux.HandleFunc("PUT /api/v1/admin/promotions/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.UpdatePromotion())))
	routerMux.HandleFunc("DELETE /api/v1/admin/promotions/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(promotionHandler.DeletePromotion())))

	// operational endpoints
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "gamestore")

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}

// setupTracing wires the OTLP trace exporter when an endpoint is configured.
// Without one, tracing stays on the default no-op provider.
func setupTracing(cfg *config.Config) func() {
	if cfg.Tracing.Endpoint == "" {
		return func() {}
	}

	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		slog.Error("Failed to create trace exporter", slog.String("error", err.Error()))

		return func() {}
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("gamestore"),
			semconv.DeploymentEnvironment(cfg.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down tracer provider", slog.String("error", err.Error()))
		}
	}
}
