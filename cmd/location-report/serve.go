package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/location-report/internal/api/http"
	"github.com/i474232898/location-report/internal/config"
	"github.com/i474232898/location-report/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Keep the watchlist collected and serve reports over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		keys, err := config.LoadWatchlist(a.cfg.WatchlistFile)
		if err != nil {
			return err
		}

		// Scheduler that periodically collects whatever is still missing.
		sched := scheduler.New(a.pipeline, keys, a.cfg.RefreshInterval, a.logger)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		app := fiber.New(fiber.Config{
			AppName:               "location-report",
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				if e, ok := err.(*fiber.Error); ok {
					code = e.Code
				}
				return c.Status(code).JSON(fiber.Map{
					"error":   true,
					"message": err.Error(),
				})
			},
		})

		app.Use(logger.New())
		app.Use(recover.New())

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"status":  "ok",
				"service": "location-report",
			})
		})

		httpapi.RegisterRoutes(app, a.reader)

		go func() {
			if err := app.Listen(":" + a.cfg.Port); err != nil {
				a.logger.Error("fiber server stopped", "error", err)
			}
		}()
		a.logger.Info("serving", "port", a.cfg.Port)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return app.ShutdownWithContext(shutdownCtx)
	},
}
