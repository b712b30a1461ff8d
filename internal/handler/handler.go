package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/config"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

type Handler struct {
	cfg             *config.Config
	userSvc         *service.UserService
	creatorSvc      *service.CreatorService
	tierSvc         *service.TierService
	membershipSvc   *service.MembershipService
	accessSvc       *service.AccessService
	contentSvc      *service.ContentService
	postSvc         *service.PostService
	sessionSvc      *service.StorageSessionService
	revenueSvc      *service.RevenueService
	notificationSvc *service.NotificationService
	validate        *validator.Validate
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	creatorSvc *service.CreatorService,
	tierSvc *service.TierService,
	membershipSvc *service.MembershipService,
	accessSvc *service.AccessService,
	contentSvc *service.ContentService,
	postSvc *service.PostService,
	sessionSvc *service.StorageSessionService,
	revenueSvc *service.RevenueService,
	notificationSvc *service.NotificationService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		userSvc:         userSvc,
		creatorSvc:      creatorSvc,
		tierSvc:         tierSvc,
		membershipSvc:   membershipSvc,
		accessSvc:       accessSvc,
		contentSvc:      contentSvc,
		postSvc:         postSvc,
		sessionSvc:      sessionSvc,
		revenueSvc:      revenueSvc,
		notificationSvc: notificationSvc,
		validate:        validator.New(),
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
