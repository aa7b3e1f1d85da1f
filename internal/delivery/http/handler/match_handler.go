package handler

import (
	"errors"

	"tender-sync/internal/delivery/http/dto"
	"tender-sync/internal/delivery/http/middleware"
	"tender-sync/internal/domain/match"
	"tender-sync/internal/pkg/response"
	"tender-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc *usecase.MatchUsecase
}

func NewMatchHandler(uc *usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/:user_id/matches", h.ListForUser)
	r.Patch("/matches/:match_id/status", h.UpdateStatus)
}

func (h *MatchHandler) ListForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	matches, err := h.uc.ListForUser(c.Context(), userID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(matches))
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	to := match.Status(req.Status)
	switch to {
	case match.StatusViewed, match.StatusNotified:
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown status", nil, nil)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), id, to)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMatchNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
		case errors.Is(err, usecase.ErrInvalidTransition):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Status cannot move backwards", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(updated))
}
