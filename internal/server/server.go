package server

import (
	"backend-flightstats/internal/config"
	"backend-flightstats/internal/stats"
	"backend-flightstats/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Stream *stream.Hub
}

func NewServer(cfg config.Config, store stats.Store, hub *stream.Hub) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Stream: hub,
	}

	registerRoutes(s, store)
	return s
}

func registerRoutes(s *Server, store stats.Store) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	stats.RegisterRoutes(s.App.Group("/stats"), stats.NewService(store))
	if s.Stream != nil {
		stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
	}
}
