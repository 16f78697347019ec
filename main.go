package main

import (
	"log"

	"github.com/communityhub/waitlist-service/config"
	"github.com/communityhub/waitlist-service/internal/handler"
	"github.com/communityhub/waitlist-service/internal/middleware"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/communityhub/waitlist-service/pkg/database"
	"github.com/communityhub/waitlist-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Publishing is best-effort; without a broker the service still runs.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("[RabbitMQ] connect failed, continuing without publisher: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Repositories
	entryRepo := repository.NewWaitlistRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, entryRepo, eventRepo, publisher)
	waitlistSvc := service.NewWaitlistService(entryRepo, eventRepo, userRepo, notificationSvc)
	lotterySvc := service.NewLotteryService(entryRepo, eventRepo, notificationSvc, publisher, nil)
	cascadeSvc := service.NewCascadeService(entryRepo, eventRepo, userRepo, notificationRepo, imageRepo, publisher)
	eventSvc := service.NewEventService(eventRepo, entryRepo, userRepo, imageRepo, publisher)
	userSvc := service.NewUserService(userRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "waitlist-service"})
	})

	api := e.Group("/api/v1")
	handler.NewEventHandler(eventSvc, cascadeSvc).RegisterRoutes(api)
	handler.NewWaitlistHandler(waitlistSvc, lotterySvc).RegisterRoutes(api)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(api)
	handler.NewUserHandler(userSvc, cascadeSvc).RegisterRoutes(api)

	log.Printf("Waitlist Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
