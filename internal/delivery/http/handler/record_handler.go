package handler

import (
	"errors"
	"strconv"

	"tender-sync/internal/delivery/http/dto"
	"tender-sync/internal/delivery/http/middleware"
	"tender-sync/internal/pkg/response"
	"tender-sync/internal/repository"
	"tender-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecordHandler struct {
	uc *usecase.RecordUsecase
}

func NewRecordHandler(uc *usecase.RecordUsecase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

func (h *RecordHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/records")
	grp.Get("/", h.List)
	grp.Get("/:record_id", h.Get)
}

func (h *RecordHandler) List(c fiber.Ctx) error {
	f := repository.RecordFilter{
		Region: c.Query("region"),
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	switch f.Status {
	case "", "active", "awarded", "closed":
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown status", nil, nil)
	}

	if raw := c.Query("min_budget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_budget", nil, err)
		}
		f.MinBudget = &v
	}

	recs, err := h.uc.List(c.Context(), f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecordListResponse(recs))
}

func (h *RecordHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("record_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid record id", nil, err)
	}

	rec, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrRecordNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Record not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecordResponse(rec))
}

func queryInt(c fiber.Ctx, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
