package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
)

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	notifications, err := h.notificationSvc.List(c.Context(), userID,
		c.QueryBool("unread_only"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return serviceError(c, err)
	}

	unread, err := h.notificationSvc.CountUnread(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	if err := h.notificationSvc.MarkRead(c.Context(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := h.notificationSvc.MarkAllRead(c.Context(), middleware.GetUserID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
