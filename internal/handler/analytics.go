package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

// ListRevenue serves the creator's own ledger. Amounts are octas; the client
// converts for display.
func (h *Handler) ListRevenue(c *fiber.Ctx) error {
	filter := repository.RevenueFilter{
		EventType: model.RevenueEventType(c.Query("event_type")),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid start_date")
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid end_date")
		}
		filter.EndDate = &end
	}

	events, err := h.revenueSvc.ListByCreator(c.Context(), middleware.GetWallet(c), filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"events": events,
	})
}

func (h *Handler) GetRevenueSummary(c *fiber.Ctx) error {
	wallet := middleware.GetWallet(c)

	total, err := h.revenueSvc.Total(c.Context(), wallet)
	if err != nil {
		return serviceError(c, err)
	}

	days := c.QueryInt("days", 30)
	period, err := h.revenueSvc.ByPeriod(c.Context(), wallet, days)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"total_octas":  total,
		"period_octas": period,
		"period_days":  days,
	})
}
