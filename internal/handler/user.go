package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.userSvc.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.userSvc.UpdateProfile(c.Context(), middleware.GetUserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) GetUserByWallet(c *fiber.Ctx) error {
	user, err := h.userSvc.GetByWallet(c.Context(), c.Params("wallet"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}
