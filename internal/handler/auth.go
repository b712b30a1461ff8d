package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/config"
	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

// Login authenticates a wallet by verifying a signed, timestamped message.
// On success the session token is both set as an httpOnly cookie and returned
// in the body for clients that prefer the Authorization header.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := service.VerifyLogin(req, time.Now()); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimestamp):
			return badRequest(c, "invalid login timestamp")
		case errors.Is(err, service.ErrLoginMessageExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "login message expired, please sign again",
			})
		case errors.Is(err, aptos.ErrInvalidSignature):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "signature verification failed",
			})
		}
		return badRequest(c, err.Error())
	}

	user, err := h.userSvc.GetOrCreate(c.Context(), req.WalletAddress)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := middleware.IssueToken(h.cfg, user.ID, user.WalletAddress)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(config.AuthTokenTTL),
		HTTPOnly: true,
		Secure:   h.cfg.Server.Environment == "production",
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Session echoes the authenticated principal.
func (h *Handler) Session(c *fiber.Ctx) error {
	wallet := middleware.GetWallet(c)
	if wallet == "" {
		return unauthorized(c)
	}

	user, err := h.userSvc.GetByWallet(c.Context(), wallet)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return c.JSON(fiber.Map{
		"success": true,
	})
}
