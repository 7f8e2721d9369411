package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wearhouse/internal/config"
	"wearhouse/internal/database"
	"wearhouse/internal/middleware"
	"wearhouse/internal/modules/auth"
	"wearhouse/internal/modules/feed"
	"wearhouse/internal/modules/garment"
	"wearhouse/internal/modules/upload"
	"wearhouse/internal/pkg/token"
	"wearhouse/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.New(cfg.DatabaseURL)
	if err := db.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("db close error=%q", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db.DB())
	garmentRepo := repository.NewGarmentRepository(db.DB())

	tokens := token.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	hub := feed.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, cfg.CookieSecure, cfg.CookiePath)

	uploads := upload.NewService(cfg.UploadDir, cfg.StaticBase)

	garmentService := garment.NewService(garmentRepo, hub)
	garmentHandler := garment.NewHandler(garmentService, uploads, cfg.PublicBaseURL)

	feedHandler := feed.NewHandler(hub)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(cfg.IsDev()), middleware.CORS())

	r.Static(cfg.StaticBase, cfg.UploadDir)
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		garmentHandler.RegisterPublicRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)

			staff := protected.Group("/")
			staff.Use(middleware.StaffOnly(userRepo))
			garmentHandler.RegisterProtectedRoutes(staff)
		}
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error=%q", err)
	}
}
