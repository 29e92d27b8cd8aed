package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"railway-system/config"
	"railway-system/internal/handlers"
	"railway-system/internal/notify"
	"railway-system/internal/services"
	_ "railway-system/migrations"
	"railway-system/monitoring"
	"railway-system/security"
	"railway-system/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub
	var notifier notify.Publisher = notify.Noop{}
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		notifier = notify.NewPubNub(notify.PubNubConfig{
			PublishKey:   cfg.PubNubPublishKey,
			SubscribeKey: cfg.PubNubSubscribeKey,
			SecretKey:    cfg.PubNubSecretKey,
			UserID:       cfg.PubNubUserID,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := monitoring.NewMonitor(app, cfg.MetricsCollectInterval)

	// Initialize services
	trainService := services.NewTrainService(app)
	ticketService := services.NewTicketService(app, notifier, monitor)
	cargoService := services.NewCargoService(app, redisClient, notifier, monitor, cfg)
	passService := services.NewPassService(app, notifier, monitor, cfg)
	complaintService := services.NewComplaintService(app, notifier, monitor)
	statsService := services.NewStatsService(app)

	// Initialize handlers
	trainHandler := handlers.NewTrainHandler(trainService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	cargoHandler := handlers.NewCargoHandler(cargoService)
	passHandler := handlers.NewPassHandler(passService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	adminHandler := handlers.NewAdminHandler(statsService, ticketService)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Start background tasks once the database is ready
		go passService.RunExpirySweeper(ctx)
		if cfg.EnableMetrics {
			go monitor.Collect(ctx)
		}

		api := e.Router.Group("/api/v1")
		api.BindFunc(rateLimiter.AntiBotMiddleware())
		api.BindFunc(rateLimiter.Middleware())

		// Train endpoints
		api.GET("/trains", trainHandler.ListUpcoming)
		api.GET("/trains/search", trainHandler.Search)

		// Ticket endpoints
		api.POST("/tickets", ticketHandler.Book)
		api.GET("/tickets", ticketHandler.List)
		api.DELETE("/tickets/{id}", ticketHandler.Cancel)

		// Cargo endpoints
		api.POST("/cargo", cargoHandler.Book)
		api.GET("/cargo", cargoHandler.List)
		api.GET("/cargo/track", cargoHandler.Track)
		api.POST("/cargo/{id}/cancel", cargoHandler.Cancel)

		// Season pass endpoints
		api.POST("/passes", passHandler.Apply)
		api.GET("/passes", passHandler.List)
		api.GET("/passes/{id}", passHandler.Get)
		api.POST("/passes/{id}/renew", passHandler.Renew)

		// Complaint endpoints
		api.POST("/complaints", complaintHandler.Submit)
		api.GET("/complaints", complaintHandler.List)
		api.GET("/complaints/{id}", complaintHandler.Get)
		api.POST("/complaints/{id}/messages", complaintHandler.FollowUp)

		// Admin endpoints
		api.GET("/admin/overview", adminHandler.Overview)
		api.GET("/admin/bookings", adminHandler.ListBookings)
		api.DELETE("/admin/bookings/{id}", adminHandler.CancelBooking)
		api.POST("/admin/trains", trainHandler.Create)
		api.PATCH("/admin/trains/{id}", trainHandler.Update)
		api.DELETE("/admin/trains/{id}", trainHandler.Delete)
		api.GET("/admin/cargo", cargoHandler.ListAll)
		api.PATCH("/admin/cargo/{id}/status", cargoHandler.UpdateStatus)
		api.GET("/admin/passes", passHandler.ListAll)
		api.PATCH("/admin/passes/{id}/status", passHandler.UpdateStatus)
		api.GET("/admin/complaints", complaintHandler.ListAll)
		api.PATCH("/admin/complaints/{id}/status", complaintHandler.UpdateStatus)

		// Prometheus metrics
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
