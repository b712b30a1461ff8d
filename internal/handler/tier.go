package handler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListTiers(c *fiber.Ctx) error {
	tiers, err := h.tierSvc.ListByCreator(c.Context(), c.Params("wallet"), !c.QueryBool("include_inactive"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"tiers": tiers,
	})
}

func (h *Handler) GetTier(c *fiber.Ctx) error {
	tierID, err := c.ParamsInt("tier_id")
	if err != nil {
		return badRequest(c, "invalid tier id")
	}

	tier, err := h.tierSvc.Get(c.Context(), c.Params("wallet"), tierID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tier)
}

// SyncTier refreshes one tier from the contract into the cache. Idempotent;
// anyone may trigger it.
func (h *Handler) SyncTier(c *fiber.Ctx) error {
	tierID, err := c.ParamsInt("tier_id")
	if err != nil {
		return badRequest(c, "invalid tier id")
	}

	tier, err := h.tierSvc.Sync(c.Context(), c.Params("wallet"), tierID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tier)
}
