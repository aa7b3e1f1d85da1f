package app

import (
	"fmt"
	"log"
	"strings"

	"tender-sync/internal/delivery/http/handler"
	"tender-sync/internal/delivery/http/middleware"
	"tender-sync/internal/delivery/http/routes"
	"tender-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app around an already-wired container.
func New(c *Container, logger *log.Logger) *App {
	f := fiber.New(fiber.Config{})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewRecordHandler(c.Records),
		handler.NewMatchHandler(c.Matches),
		handler.NewSyncHandler(c.Sync),
		ws.NewHandler(c.Hub, logger),
	)
	registry.Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
