package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/knakagawa/agile-dashboard-api/internal/config"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/database"
	"github.com/knakagawa/agile-dashboard-api/internal/handlers"
	"github.com/knakagawa/agile-dashboard-api/internal/metrics"
	"github.com/knakagawa/agile-dashboard-api/internal/middleware"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Prometheus metrics
	apiMetrics := metrics.New()

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestMetrics(apiMetrics))

	// CORS for the browser dashboard
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Session middleware: redis-backed when configured, cookie-backed
	// otherwise (single-machine default)
	store, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	checkInService := services.NewCheckInService(checkInRepo)
	analyticsService := services.NewAnalyticsService(userRepo, taskRepo, checkInRepo, apiMetrics)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(authService, taskService)
	checkInHandler := handlers.NewCheckInHandler(authService, checkInService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Health check and metrics endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Agile Dashboard API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, login throttled per IP)
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				middleware.LoginRateLimiter(rate.Limit(cfg.LoginRate), cfg.LoginBurst, apiMetrics),
				authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Tenant registry (public, feeds the login page picker)
		api.GET("/tenants", authHandler.ListTenants)

		// Task routes (protected, scoped to the session tenant)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/move", taskHandler.MoveTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Check-in routes (protected, scoped to the session tenant)
		checkIns := api.Group("/checkins")
		checkIns.Use(middleware.RequireAuth())
		{
			checkIns.GET("", checkInHandler.ListCheckIns)
			checkIns.POST("", checkInHandler.CreateCheckIn)
			checkIns.GET("/today", checkInHandler.CheckInStatus)
			checkIns.PATCH("/:id", checkInHandler.UpdateCheckIn)
			checkIns.DELETE("/:id", checkInHandler.DeleteCheckIn)
		}

		// Analytics routes (admin tenant only)
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RequireAuth(), middleware.RequireAdmin(authService))
		{
			analytics.GET("/tenants", analyticsHandler.TenantStats)
			analytics.GET("/users", analyticsHandler.UserStats)
			analytics.GET("/participation", analyticsHandler.Participation)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func buildSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisAddr == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		cfg.RedisAddr,             // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		return nil, err
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})

	return store, nil
}
