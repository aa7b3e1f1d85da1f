package handler

import (
	"errors"

	"tender-sync/internal/delivery/http/dto"
	"tender-sync/internal/delivery/http/middleware"
	"tender-sync/internal/pipeline"
	"tender-sync/internal/pkg/response"
	"tender-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SyncHandler struct {
	uc *usecase.SyncUsecase
}

func NewSyncHandler(uc *usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

func (h *SyncHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/sync")
	grp.Post("/run", h.Run)
	grp.Get("/runs", h.ListRuns)
}

// Run executes a sync cycle inline and returns its summary. An overlap
// with a run already in flight is a conflict, not a queued request.
func (h *SyncHandler) Run(c fiber.Ctx) error {
	summary, err := h.uc.Run(c.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrSyncAlreadyRunning) {
			return middleware.NewAppError(fiber.StatusConflict, "Sync already running", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSyncSummaryResponse(summary))
}

func (h *SyncHandler) ListRuns(c fiber.Ctx) error {
	runs, err := h.uc.ListRuns(c.Context(), queryInt(c, "limit", 20))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSyncRunListResponse(runs))
}
