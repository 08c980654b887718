package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/api/handlers"
	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/health"
	"github.com/R-umaria/boxedwithlove/internal/metrics"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/session"
	"github.com/R-umaria/boxedwithlove/internal/telemetry"
	"github.com/R-umaria/boxedwithlove/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceVersion = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing
	shutdownTracing, err := telemetry.InitTracerProvider(context.Background(), &cfg.Telemetry, "boxedwithlove", serviceVersion)
	if err != nil {
		slog.Error("Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host + ":" + cfg.RedisConnect.Port,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessionStore := session.NewStore(redisClient, &cfg.Session)
	rateLimiter := repository.NewRateLimiter(redisClient, &cfg.RateConfig)
	emailClient := sendgrid.NewEmailService(&cfg.SendGrid)

	userService := service.NewUserService(repos.User, rateLimiter)
	productService := service.NewProductService(repos.Product, repos.Review, &cfg.Catalog)
	reviewService := service.NewReviewService(repos.Review, repos.Product)
	cartService := service.NewCartService(repos.Cart, repos.Product, &cfg.Checkout)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.Product, repos.PaymentMethod, cartService)
	paymentService := service.NewPaymentMethodService(repos.PaymentMethod)
	notificationService := service.NewNotificationService(repos.Notification, emailClient, logger)

	userHandler := handlers.NewUserHandler(userService, cartService)
	productHandler := handlers.NewProductHandler(productService, reviewService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentHandler := handlers.NewPaymentMethodHandler(paymentService)
	checkoutHandler := handlers.NewCheckoutHandler(cartService, paymentService)
	orderHandler := handlers.NewOrderHandler(orderService, userService, notificationService)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore, &cfg.Session)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error initializing health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", serviceVersion))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", userHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/auth/me", middleware.RequireUser(userHandler.Me()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.List())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.Get())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", productHandler.ListReviews())
	routerMux.HandleFunc("POST /api/v1/products/{id}/reviews", middleware.RequireUser(productHandler.CreateReview()))

	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.Get())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{itemId}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{itemId}", cartHandler.PatchQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{itemId}", cartHandler.RemoveItem())

	routerMux.HandleFunc("GET /api/v1/payment-methods", middleware.RequireUser(paymentHandler.List()))
	routerMux.HandleFunc("POST /api/v1/payment-methods", middleware.RequireUser(paymentHandler.Create()))
	routerMux.HandleFunc("PUT /api/v1/payment-methods/{id}", middleware.RequireUser(paymentHandler.Replace()))
	routerMux.HandleFunc("PATCH /api/v1/payment-methods/{id}", middleware.RequireUser(paymentHandler.Update()))
	routerMux.HandleFunc("DELETE /api/v1/payment-methods/{id}", middleware.RequireUser(paymentHandler.Delete()))

	routerMux.HandleFunc("GET /api/v1/checkout", middleware.RequireUser(checkoutHandler.Get()))
	routerMux.HandleFunc("PUT /api/v1/checkout/shipping", middleware.RequireUser(checkoutHandler.SetShipping()))
	routerMux.HandleFunc("PUT /api/v1/checkout/payment", middleware.RequireUser(checkoutHandler.SelectPayment()))

	routerMux.HandleFunc("POST /api/v1/orders", middleware.RequireUser(orderHandler.Create()))
	routerMux.HandleFunc("GET /api/v1/orders", middleware.RequireUser(orderHandler.List()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", middleware.RequireUser(orderHandler.Get()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}", middleware.RequireUser(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", middleware.RequireUser(orderHandler.Delete()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = sessionMiddleware.WithSession(handler)
	handler = middleware.Options(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("Error closing redis connection", slog.String("error", err.Error()))
	}

}
