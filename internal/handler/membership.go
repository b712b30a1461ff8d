package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

func (h *Handler) ListMyMemberships(c *fiber.Ctx) error {
	memberships, err := h.membershipSvc.ListByMember(c.Context(), middleware.GetWallet(c), c.QueryBool("active_only"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"memberships": memberships,
	})
}

func (h *Handler) GetMembership(c *fiber.Ctx) error {
	membership, err := h.membershipSvc.Get(c.Context(), middleware.GetWallet(c), c.Params("wallet"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"membership":     membership,
		"active":         membership.IsActive(),
		"days_remaining": membership.DaysRemaining(),
	})
}

func (h *Handler) ListCreatorMembers(c *fiber.Ctx) error {
	memberships, err := h.membershipSvc.ListByCreator(c.Context(), middleware.GetWallet(c), c.QueryBool("active_only", true))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"members": memberships,
	})
}

// SyncMembership pulls the caller's membership with a creator from chain into
// the cache.
func (h *Handler) SyncMembership(c *fiber.Ctx) error {
	membership, err := h.membershipSvc.Sync(c.Context(), middleware.GetWallet(c), c.Params("wallet"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(membership)
}

// RecordPurchase confirms an on-chain membership purchase and settles the
// off-chain bookkeeping.
func (h *Handler) RecordPurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	membership, err := h.membershipSvc.RecordPurchase(c.Context(), middleware.GetWallet(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// CheckAccess is the standalone decision endpoint: it reports whether the
// caller could open a hypothetical item of the given creator and tier without
// touching any content row.
func (h *Handler) CheckAccess(c *fiber.Ctx) error {
	item := model.GatedItem{OwnerWallet: c.Params("wallet")}
	if tier := c.QueryInt("tier", -1); tier >= 0 {
		item.TierRequirement = &tier
	}

	decision, err := h.accessSvc.ResolveItem(c.Context(), middleware.GetWallet(c), item)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(decision)
}
