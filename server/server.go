package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Run serves the generated site directory until the process is stopped.
func Run(log *slog.Logger, root, addr string) error {
	app := fiber.New(fiber.Config{
		AppName:               "ai-info-rss-feed",
		DisableStartupMessage: true,
	})
	app.Static("/", root, fiber.Static{Browse: true})

	log.Info("serving site", slog.String("dir", root), slog.String("addr", addr))
	return app.Listen(addr)
}
