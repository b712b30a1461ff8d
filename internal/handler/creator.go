package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

func (h *Handler) InitializeCreator(c *fiber.Ctx) error {
	var req service.InitializeCreatorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.creatorSvc.Initialize(c.Context(), middleware.GetUserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *Handler) ListCreators(c *fiber.Ctx) error {
	creators, err := h.creatorSvc.List(c.Context(),
		c.Query("category"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"creators": creators,
	})
}

func (h *Handler) GetCreator(c *fiber.Ctx) error {
	creator, err := h.creatorSvc.GetByWallet(c.Context(), c.Params("wallet"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(creator)
}

func (h *Handler) UpdateCreator(c *fiber.Ctx) error {
	var req service.UpdateCreatorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.creatorSvc.UpdateProfile(c.Context(), middleware.GetUserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

// GetCreatorStats serves the creator dashboard; callers only ever see their
// own numbers.
func (h *Handler) GetCreatorStats(c *fiber.Ctx) error {
	stats, err := h.creatorSvc.Stats(c.Context(), middleware.GetWallet(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
