package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

// denied maps a policy denial onto its HTTP status. Codes stay stable so
// clients branch on the reason, not the message.
func denied(c *fiber.Ctx, decision model.AccessDecision) error {
	status := fiber.StatusForbidden
	if decision.Reason == model.DenialAuthRequired {
		status = fiber.StatusUnauthorized
	}

	body := fiber.Map{
		"error":  "access denied",
		"reason": decision.Reason,
	}
	if decision.CurrentTier != nil {
		body["current_tier"] = *decision.CurrentTier
	}
	if decision.RequiredTier != nil {
		body["required_tier"] = *decision.RequiredTier
	}
	return c.Status(status).JSON(body)
}

// serviceError translates service and repository sentinels. Anything
// unrecognized is an infrastructure failure and surfaces as a plain 500,
// never dressed up as an access denial.
func serviceError(c *fiber.Ctx, err error) error {
	var insufficient *service.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":  "insufficient credits",
			"reason": "INSUFFICIENT_CREDITS",
			"need":   insufficient.Need,
			"have":   insufficient.Have,
		})
	}

	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":  "storage session expired",
			"reason": "SESSION_EXPIRED",
		})
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "storage session not found",
		})
	case errors.Is(err, service.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "you do not own this resource",
		})
	case errors.Is(err, service.ErrNotRegistered):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "wallet is not registered",
		})
	case errors.Is(err, service.ErrAlreadyCreator):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "user is already a creator",
		})
	case errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidConsumeAmount),
		errors.Is(err, aptos.ErrTransactionFailed),
		errors.Is(err, aptos.ErrInvalidAddress):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, aptos.ErrTransactionNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "transaction not found on chain",
		})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	case errors.Is(err, repository.ErrCreatorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "creator not found",
		})
	case errors.Is(err, repository.ErrTierNotFound), errors.Is(err, aptos.ErrTierNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "tier not found",
		})
	case errors.Is(err, repository.ErrMembershipNotFound), errors.Is(err, aptos.ErrMembershipNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "membership not found",
		})
	case errors.Is(err, repository.ErrContentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "content not found",
		})
	case errors.Is(err, repository.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "post not found",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "authentication required",
	})
}
