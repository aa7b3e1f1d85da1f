package handler

import (
	"context"
	"time"

	"tender-sync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
	}
	cacheStatus := "up"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		// the cache is optional, a down cache does not degrade health
		cacheStatus = "bypassed"
	}

	body := fiber.Map{"database": dbStatus, "cache": cacheStatus}
	if dbStatus != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", body)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, body)
}
