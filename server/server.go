// Package server exposes the session and analytics API over HTTP and relays
// live conversations over websockets.
package server

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/liralabs/lira-core/analytics"
	"github.com/liralabs/lira-core/core/llms/openai"
	"github.com/liralabs/lira-core/sessions"
)

type Server struct {
	app      *fiber.App
	registry *sessions.Registry
	store    *analytics.Store

	// summaryLLM is optional; without it session teardown skips the summary.
	summaryLLM  *openai.Client
	corsOrigins []string

	mu       sync.Mutex
	tracking map[string]*analytics.SessionAnalytics
	detach   map[string]func()
}

type Option func(*Server)

// WithSummaryLLM enables structured session summaries on teardown.
func WithSummaryLLM(client *openai.Client) Option {
	return func(s *Server) { s.summaryLLM = client }
}

// WithCORSOrigins restricts cross-origin access to the named origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

func New(registry *sessions.Registry, store *analytics.Store, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		store:    store,
		tracking: map[string]*analytics.SessionAnalytics{},
		detach:   map[string]func(){},
	}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		AppName:               "lira-server",
		DisableStartupMessage: true,
	})

	corsConfig := cors.Config{}
	if len(s.corsOrigins) > 0 {
		corsConfig.AllowOrigins = strings.Join(s.corsOrigins, ",")
	}
	app.Use(cors.New(corsConfig))

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)

	api.Post("/sessions", s.handleCreateSession)
	api.Get("/sessions/:id", s.handleGetSession)
	api.Patch("/sessions/:id/mode", s.handleSetMode)
	api.Delete("/sessions/:id", s.handleEndSession)

	api.Get("/analytics/sessions/:id", s.handleGetSessionAnalytics)
	api.Post("/analytics/users/:id", s.handleCreateProfile)
	api.Get("/analytics/users/:id", s.handleGetProfile)
	api.Get("/analytics/users/:id/stats", s.handleGetUserStats)
	api.Patch("/analytics/users/:id/preferences", s.handleUpdatePreferences)

	api.Use("/sessions/:id/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/sessions/:id/ws", websocket.New(s.handleSessionWS))

	s.app = app
	return s
}

// Listen blocks serving the API on the passed port.
func (s *Server) Listen(port string) error {
	if err := s.app.Listen(":" + port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and ends every live session.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	s.registry.EndAll()
	return err
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
