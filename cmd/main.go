package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"dinemart/internal/caching"
	"dinemart/internal/handlers"
	"dinemart/internal/jobs"
	"dinemart/internal/jobs/background"
	"dinemart/internal/middleware"
	"dinemart/internal/models"
	"dinemart/internal/repositories"
	"dinemart/internal/services"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucketExists(context.Background(), services.MediaBucket); err != nil {
		log.Printf("WARN: could not ensure media bucket: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	restaurantRepo := repositories.NewRestaurantRepo(pool)
	menuItemRepo := repositories.NewMenuItemRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)
	promotionRepo := repositories.NewPromotionRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)

	// Cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Notification queue
	asynqOpts := asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB}
	asynqClient := asynq.NewClient(asynqOpts)
	defer asynqClient.Close()
	notifier := services.NewQueueNotifier(asynqClient)

	// Create services
	promotionSvc := services.NewPromotionService(promotionRepo)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, menuItemRepo, restaurantRepo,
		paymentRepo, promotionSvc, notifier)
	reservationSvc := services.NewReservationService(reservationRepo, tableRepo, restaurantRepo, notifier)
	availabilitySvc := services.NewAvailabilityService(tableRepo, reservationRepo)
	menuSvc := services.NewMenuService(restaurantRepo, menuItemRepo, cacheSvc, mediaSvc)
	alertSvc := jobs.NewInventoryAlertService(inventoryRepo, restaurantRepo, notifier)

	// Notification worker
	worker := jobs.NewNotificationWorker(userRepo, notificationRepo)
	asynqServer := asynq.NewServer(asynqOpts, asynq.Config{Concurrency: 5})
	go func() {
		if err := asynqServer.Run(worker.NewNotificationMux()); err != nil {
			log.Fatalf("Notification worker failed: %v", err)
		}
	}()

	// Background sweeps
	scheduler := background.NewJobScheduler(orderSvc, reservationSvc, alertSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Create handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	reservationHandlers := handlers.NewReservationHandlers(reservationSvc, availabilitySvc)
	promotionHandlers := handlers.NewPromotionHandlers(promotionSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationRepo)
	restaurantHandlers := handlers.NewRestaurantHandlers(menuSvc, tableRepo)
	inventoryHandlers := handlers.NewInventoryHandlers(inventoryRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.Readiness)

	v1 := e.Group("/v1")

	// Public catalog reads
	v1.GET("/restaurants", restaurantHandlers.ListRestaurants)
	v1.GET("/restaurants/:id", restaurantHandlers.GetRestaurant)
	v1.GET("/restaurants/:id/menu", restaurantHandlers.GetMenu)
	v1.GET("/restaurants/:id/tables", restaurantHandlers.ListTables)
	v1.GET("/menu-items/:id", restaurantHandlers.GetMenuItem)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	staffRoles := []string{models.RoleRestaurantOwner, models.RoleStaff, models.RoleAdmin}

	// Orders
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders", orderHandlers.ListOrders)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.GET("/orders/:id/items", orderHandlers.ListOrderItems)
	protected.GET("/orders/:id/track", orderHandlers.TrackOrder)
	protected.POST("/orders/:id/apply-promo", orderHandlers.ApplyPromotion)
	protected.POST("/orders/:id/cancel", orderHandlers.CancelOrder)
	protected.PATCH("/orders/:id/status", orderHandlers.UpdateStatus, middleware.RequireRole(staffRoles...))
	protected.GET("/restaurants/:id/orders", orderHandlers.ListRestaurantOrders, middleware.RequireRole(staffRoles...))

	// Reservations
	protected.POST("/reservations", reservationHandlers.CreateReservation)
	protected.POST("/reservations/check-availability", reservationHandlers.CheckAvailability)
	protected.GET("/reservations/:id", reservationHandlers.GetReservation)
	protected.POST("/reservations/:id/cancel", reservationHandlers.Cancel)
	protected.POST("/reservations/:id/confirm", reservationHandlers.Confirm, middleware.RequireRole(staffRoles...))
	protected.POST("/reservations/:id/seat", reservationHandlers.Seat, middleware.RequireRole(staffRoles...))
	protected.POST("/reservations/:id/complete", reservationHandlers.Complete, middleware.RequireRole(staffRoles...))
	protected.POST("/reservations/:id/no-show", reservationHandlers.MarkNoShow, middleware.RequireRole(staffRoles...))

	// Promotions
	protected.POST("/promotions/validate", promotionHandlers.Validate)
	protected.POST("/promotions", promotionHandlers.Create, middleware.RequireRole(models.RoleRestaurantOwner, models.RoleAdmin))
	protected.PATCH("/promotions/:id/active", promotionHandlers.SetActive, middleware.RequireRole(models.RoleRestaurantOwner, models.RoleAdmin))

	// Tables (operator only)
	protected.PATCH("/tables/:id/availability", restaurantHandlers.SetTableAvailability, middleware.RequireRole(staffRoles...))

	// Notifications
	protected.GET("/notifications", notificationHandlers.ListNotifications)
	protected.POST("/notifications/:id/read", notificationHandlers.MarkRead)

	// Background job visibility (admin only)
	protected.GET("/jobs/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, scheduler.GetJobStatus())
	}, middleware.RequireRole(models.RoleAdmin))

	// Inventory (operator only)
	protected.GET("/inventory/low-stock", inventoryHandlers.ListLowStock, middleware.RequireRole(staffRoles...))
	protected.POST("/inventory/:id/adjust", inventoryHandlers.AdjustQuantity, middleware.RequireRole(staffRoles...))

	// Media uploads (operator only)
	protected.POST("/restaurants/:id/image", restaurantHandlers.UploadRestaurantImage, middleware.RequireRole(models.RoleRestaurantOwner, models.RoleAdmin))
	protected.POST("/menu-items/:id/image", restaurantHandlers.UploadMenuItemImage, middleware.RequireRole(models.RoleRestaurantOwner, models.RoleAdmin))

	// Graceful shutdown for background workers
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		if err := scheduler.Stop(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
		asynqServer.Shutdown()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Dinemart server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
