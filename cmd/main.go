package main

import (
	"fmt"
	"os"
	"time"

	"foodmarket/internal/cache"
	"foodmarket/internal/handler"
	"foodmarket/internal/middleware"
	"foodmarket/internal/model"
	"foodmarket/internal/notify"
	"foodmarket/internal/order"
	"foodmarket/pkg/config"
	"foodmarket/pkg/database"
	"foodmarket/pkg/jwtutil"
	"foodmarket/pkg/logger"
	"foodmarket/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("foodmarket")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations
	if err := database.MigrateModels(
		&model.User{},
		&model.Restaurant{},
		&model.Category{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.NotificationChannel{},
	); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize JWT utility
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})

	// Initialize HTTP metrics
	httpMetrics := metrics.NewHTTPMetrics(conf.ServiceName)

	// Wire handler dependencies
	orderStore := order.NewGormStore(db)
	handler.InitAuthHandler(jwt)
	handler.InitOrderHandler(order.NewService(orderStore), orderStore)
	handler.InitRestaurantHandler(cache.New(&conf.Redis, 5*time.Minute))
	handler.InitQRHandler(conf.Server.PublicURL)
	handler.InitNotifyHandler(
		notify.NewClient(&conf.Line),
		notify.NewStateCodec(conf.Line.StateKey),
		conf.Server.PublicURL,
	)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	// Operational endpoints
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/health", handler.HealthCheck)

	// Auth
	e.POST("/auth/register", handler.Register)
	e.POST("/auth/login", handler.Login)

	// Public restaurant reads
	e.GET("/restaurants", handler.ListRestaurants)
	e.GET("/restaurants/:id", handler.GetRestaurant)
	e.GET("/restaurants/:id/qr", handler.RestaurantQR)

	// Role-gated restaurant management
	auth := middleware.JWTAuthMiddleware(jwt)
	e.POST("/restaurants", handler.CreateRestaurant, auth, middleware.RequireRole(model.RoleAdmin))
	e.GET("/restaurants/owned", handler.ListOwnedRestaurants, auth, middleware.RequireRole(model.RoleRestaurantOwner))
	e.GET("/users/owners", handler.ListOwners, auth, middleware.RequireRole(model.RoleAdmin))

	// Orders - any authenticated user
	orders := e.Group("/orders", auth)
	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.ListOrders)

	// Notification channel linking
	e.GET("/notify/authorize", handler.NotifyAuthorize, auth)
	e.GET("/notify/callback", handler.NotifyCallback)

	// Start server
	log.Info("Starting foodmarket on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
