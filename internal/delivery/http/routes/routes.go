package routes

import (
	"tender-sync/internal/delivery/http/handler"
	"tender-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	records *handler.RecordHandler
	matches *handler.MatchHandler
	sync    *handler.SyncHandler
	wsh     *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	records *handler.RecordHandler,
	matches *handler.MatchHandler,
	sync *handler.SyncHandler,
	wsh *ws.Handler,
) *Registry {
	return &Registry{health: health, records: records, matches: matches, sync: sync, wsh: wsh}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	v1 := app.Group("/api").Group("/v1")
	r.records.RegisterRoutes(v1)
	r.matches.RegisterRoutes(v1)
	r.sync.RegisterRoutes(v1)

	if r.wsh != nil {
		v1.Get("/ws/matches", r.wsh.HandleMatchesWS)
	}
}
