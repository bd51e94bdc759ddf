package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acme-be/internal/cache"
	"acme-be/internal/config"
	"acme-be/internal/controllers"
	"acme-be/internal/database"
	"acme-be/internal/fixtures"
	"acme-be/internal/middleware"
	"acme-be/internal/repository"
	"acme-be/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	cfg := config.Load()

	// Storage: Postgres when configured, otherwise process memory
	var store *repository.Store
	if cfg.DatabaseURL != "" {
		db, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = repository.NewPostgresStore(db)
		slog.Info("using postgres store")
	} else {
		store = repository.NewMemoryStore()
		slog.Info("DATABASE_URL not set, using in-memory store")
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, continuing without cache", "err", err)
		} else {
			cacheClient = c
			defer cacheClient.Close()
			slog.Info("connected to redis cache")
		}
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	// Initialize services
	userOpts := []service.UserOption{service.WithPageSize(cfg.PageSize)}
	if cacheClient != nil {
		userOpts = append(userOpts, service.WithUserCache(cacheClient, cacheTTL))
	}
	userService := service.NewUserService(store.Users, store.Companies, userOpts...)
	companyService := service.NewCompanyService(store.Companies, store.Profits, cacheClient, cacheTTL)
	catalogService := service.NewCatalogService(store.Products, store.Offerings)
	noteService := service.NewNoteService(store.Notes)
	bookmarkService := service.NewBookmarkService(store.Bookmarks)
	vacationService := service.NewVacationService(store.Vacations)
	followingService := service.NewFollowingCompanyService(store.Followings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFixtures {
		seeder := fixtures.NewSeeder(fixtures.NewGenerator(0), fixtures.Services{
			Users:      userService,
			Companies:  companyService,
			Catalog:    catalogService,
			Notes:      noteService,
			Followings: followingService,
		})
		if _, err := seeder.SeedIfEmpty(ctx); err != nil {
			log.Fatalf("Failed to seed fixtures: %v", err)
		}
	}

	// Initialize controllers
	handlers := &controllers.Handlers{
		Users:      controllers.NewUserController(userService),
		Companies:  controllers.NewCompanyController(companyService, userService),
		Catalog:    controllers.NewCatalogController(catalogService),
		Notes:      controllers.NewNoteController(noteService),
		Bookmarks:  controllers.NewBookmarkController(bookmarkService),
		Vacations:  controllers.NewVacationController(vacationService),
		Followings: controllers.NewFollowingCompanyController(followingService),
	}

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer generalRateLimiter.Stop()
	writeRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitWriteRPS), cfg.RateLimitWriteBurst)
	defer writeRateLimiter.Stop()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no rate limiting)
	router.GET("/health", controllers.Health)

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware(), writeRateLimiter.LimitWrites())
	controllers.RegisterRoutes(api, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "err", err)
	}
}
