package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/model"
)

type CreateSessionRequest struct {
	AmountOctas     uint64 `json:"amount_octas" validate:"min=1"`
	TransactionHash string `json:"transaction_hash" validate:"required"`
}

// CreateStorageSession opens a prepaid chunkset balance from a confirmed
// payment transaction.
func (h *Handler) CreateStorageSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.sessionSvc.Create(c.Context(), middleware.GetWallet(c), req.AmountOctas, req.TransactionHash)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionView(session))
}

func (h *Handler) GetStorageSession(c *fiber.Ctx) error {
	session, err := h.sessionSvc.GetValid(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(sessionView(session))
}

// EstimateUploadCost prices a prospective upload in chunksets.
func (h *Handler) EstimateUploadCost(c *fiber.Ctx) error {
	size := int64(c.QueryInt("size_bytes"))
	if size <= 0 {
		return badRequest(c, "size_bytes is required")
	}
	return c.JSON(fiber.Map{
		"chunksets": h.sessionSvc.EstimateCost(size),
	})
}

func sessionView(session *model.StorageSession) fiber.Map {
	return fiber.Map{
		"session": session,
		"state":   session.StateAt(time.Now()),
	}
}
