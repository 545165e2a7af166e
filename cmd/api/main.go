package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rentwheels/internal/config"
	"rentwheels/internal/handler"
	"rentwheels/internal/middleware"
	"rentwheels/internal/pkg/logger"
	"rentwheels/internal/repository"
	"rentwheels/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zlog.Warn("MinIO unavailable, image upload disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg, zlog)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg, repos)

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config, repos *repository.Repositories) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	protected := v1.Group("", middleware.AuthRequired(cfg.JWTSecret, repos.User))

	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", middleware.RequireAnyRole("owner"), h.Vehicle.Submit)
	vehicles.Get("/", h.Vehicle.Search)
	vehicles.Get("/mine", middleware.RequireAnyRole("owner"), h.Vehicle.ListMine)
	vehicles.Get("/status-counts", middleware.RequireRole("admin"), h.Vehicle.StatusCounts)
	vehicles.Get("/:vehicleId", h.Vehicle.Get)
	vehicles.Put("/:vehicleId/resubmit", middleware.RequireAnyRole("owner"), h.Vehicle.Resubmit)
	vehicles.Post("/:vehicleId/approve", middleware.RequireRole("admin"), h.Vehicle.Approve)
	vehicles.Post("/:vehicleId/reject", middleware.RequireRole("admin"), h.Vehicle.Reject)
	vehicles.Post("/:vehicleId/make-unavailable", middleware.RequireRole("admin"), h.Vehicle.MakeUnavailable)
	vehicles.Post("/:vehicleId/make-available", middleware.RequireRole("admin"), h.Vehicle.MakeAvailable)
	vehicles.Patch("/:vehicleId/status", middleware.RequireRole("admin"), h.Vehicle.SetStatus)

	bookings := protected.Group("/bookings")
	bookings.Post("/", h.Booking.Create)
	bookings.Get("/mine", h.Booking.ListMine)
	bookings.Get("/for-my-vehicles", middleware.RequireAnyRole("owner"), h.Booking.ListForMyVehicles)
	bookings.Get("/:bookingId", h.Booking.Get)
	bookings.Post("/:bookingId/confirm", middleware.RequireAnyRole("owner"), h.Booking.Confirm)
	bookings.Post("/:bookingId/complete", middleware.RequireAnyRole("owner"), h.Booking.Complete)
	bookings.Post("/:bookingId/cancel", h.Booking.Cancel)

	images := protected.Group("/images")
	images.Post("/", middleware.RequireAnyRole("owner"), h.Image.Upload)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.Latest)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)
}
