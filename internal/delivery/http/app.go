package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

// AppConfig configures the Fiber application
type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

// NewApp builds the Fiber app with middleware and routes
func NewApp(riskSvc *service.RiskService, cfg AppConfig) *fiber.App {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "Crosswalk Risk API v1.0",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	SetupRoutes(app, riskSvc)

	return app
}

// requestLogger logs one line per request through zap
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		zap.L().Info("request",
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
