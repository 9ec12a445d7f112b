package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookhaven/bookstore-api/internal/api/handler"
	"github.com/bookhaven/bookstore-api/internal/api/middleware"
	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/service"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/redis"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("bookstore"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "x-access-token"},
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	revoker := redisdb.NewRevocationStore(rdb)
	files := storage.NewFileStore(cfg.PublicDir)
	locks := service.NewUserLocks(0)

	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, 0, log)
	catalogService := service.NewCatalogService(bookRepo, files, log)
	cartService := service.NewCartService(userRepo, bookRepo, locks, log)
	purchaseService := service.NewPurchaseService(userRepo, files, locks, log)

	// The token cookie is cross-site (SameSite=None), which requires Secure.
	authHandler := handler.NewAuthHandler(authService, true)
	bookHandler := handler.NewBookHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)

	// Authentication runs on every request; anonymous requests pass
	// through unauthenticated and are gated per-route below.
	e.Use(middleware.Auth(cfg.JWTSecret, revoker))
	signedIn := middleware.RequireSignIn()
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Account / session ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/signin", authHandler.Signin)
	e.GET("/logout", authHandler.Logout)
	e.GET("/user", authHandler.CurrentUser)

	// --- Catalog ---
	e.GET("/books/json", bookHandler.List)
	e.POST("/books/create", bookHandler.Create, signedIn, adminOnly)
	e.POST("/delete_book", bookHandler.Delete, signedIn, adminOnly)

	// --- Cart ---
	e.GET("/cart/json", cartHandler.List, signedIn)
	e.POST("/cart/add", cartHandler.Add, signedIn)
	e.POST("/cart/remove", cartHandler.Remove, signedIn)
	e.POST("/cart/clear", cartHandler.Clear, signedIn)

	// --- Purchase / download ---
	e.POST("/purchase", purchaseHandler.Purchase, signedIn)
	e.POST("/book/view", purchaseHandler.Download, signedIn)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// Static assets: book covers and the bundled UI.
	e.Static("/", cfg.PublicDir)

	return e
}
