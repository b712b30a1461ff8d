package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

func (h *Handler) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	post, err := h.postSvc.Create(c.Context(), middleware.GetWallet(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns the post locked or unlocked for the viewer; denial shows as
// a withheld body, not an error status.
func (h *Handler) GetPost(c *fiber.Ctx) error {
	post, err := h.postSvc.Get(c.Context(), middleware.GetWallet(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

func (h *Handler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postSvc.List(c.Context(), middleware.GetWallet(c), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

func (h *Handler) ListCreatorPosts(c *fiber.Ctx) error {
	posts, err := h.postSvc.ListByCreator(c.Context(), middleware.GetWallet(c), c.Params("wallet"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

func (h *Handler) UpdatePost(c *fiber.Ctx) error {
	var req service.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	post, err := h.postSvc.Update(c.Context(), middleware.GetWallet(c), c.Params("id"), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

func (h *Handler) DeletePost(c *fiber.Ctx) error {
	if err := h.postSvc.Delete(c.Context(), middleware.GetWallet(c), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
