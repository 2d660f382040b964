package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"stockroom/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stockroom/internal/auth"
	"stockroom/internal/cache"
	"stockroom/internal/config"
	"stockroom/internal/db"
	"stockroom/internal/handler"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/internal/service"
)

// @title Inventory API
// @version 1.0
// @description Inventory management API with email/password and Google login.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Product{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Initialize auth components
	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher()

	var googleVerifier auth.GoogleTokenVerifier
	if verifier, err := auth.NewGoogleVerifier(context.Background(), cfg.GoogleCredentialsFile); err != nil {
		log.Printf("google verifier init: %v (google login disabled)", err)
	} else {
		googleVerifier = verifier
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, tokenIssuer, googleVerifier, cfg.GoogleAutoProvision)
	productService := service.NewProductService(productRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	// Register routes
	router.Register(e, cfg, authHandler, productHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
