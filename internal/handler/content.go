package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/service"
)

// UploadContent accepts a multipart upload debited against the caller's
// storage session. The session id rides in the X-Shelby-Session header.
func (h *Handler) UploadContent(c *fiber.Ctx) error {
	sessionID := c.Get("X-Shelby-Session")
	if sessionID == "" {
		sessionID = c.FormValue("session_id")
	}
	if sessionID == "" {
		return badRequest(c, "storage session required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	req := service.UploadRequest{
		SessionID:   sessionID,
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		Title:       c.FormValue("title"),
		ContentType: c.FormValue("content_type", model.ContentTypeFile),
		IsPublic:    c.FormValue("is_public") == "true",
	}
	if desc := c.FormValue("description"); desc != "" {
		req.Description = &desc
	}
	if raw := c.FormValue("tier_requirement"); raw != "" {
		tier, err := strconv.Atoi(raw)
		if err != nil || tier < 0 {
			return badRequest(c, "invalid tier requirement")
		}
		req.TierRequirement = &tier
	}
	if raw := c.FormValue("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return badRequest(c, "invalid duration")
		}
		req.Duration = &duration
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "failed to read file")
	}
	defer file.Close()

	content, err := h.contentSvc.Upload(c.Context(), middleware.GetWallet(c), file, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(content)
}

func (h *Handler) ListPublicContent(c *fiber.Ctx) error {
	items, err := h.contentSvc.ListPublic(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"content": items,
	})
}

func (h *Handler) ListCreatorContent(c *fiber.Ctx) error {
	items, err := h.contentSvc.ListByCreator(c.Context(), c.Params("wallet"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"content": items,
	})
}

// GetContent returns the metadata together with the caller's access decision
// so the client knows whether to offer playback or an upsell.
func (h *Handler) GetContent(c *fiber.Ctx) error {
	content, decision, err := h.contentSvc.Get(c.Context(), middleware.GetWallet(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"content": content,
		"access":  decision,
	})
}

func (h *Handler) StreamContent(c *fiber.Ctx) error {
	return h.serveBlob(c, model.AccessTypeStream)
}

func (h *Handler) DownloadContent(c *fiber.Ctx) error {
	return h.serveBlob(c, model.AccessTypeDownload)
}

func (h *Handler) serveBlob(c *fiber.Ctx, accessType string) error {
	meta := service.AccessContext{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}

	reader, contentType, content, decision, err := h.contentSvc.Stream(c.Context(), middleware.GetWallet(c), c.Params("id"), accessType, meta)
	if err != nil {
		return serviceError(c, err)
	}
	if !decision.Granted {
		return denied(c, decision)
	}

	c.Set(fiber.HeaderContentType, contentType)
	if accessType == model.AccessTypeDownload {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+content.Title+`"`)
	}
	return c.SendStream(reader, int(content.FileSize))
}

func (h *Handler) UpdateContent(c *fiber.Ctx) error {
	var req service.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	content, err := h.contentSvc.Update(c.Context(), middleware.GetWallet(c), c.Params("id"), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(content)
}

func (h *Handler) DeleteContent(c *fiber.Ctx) error {
	if err := h.contentSvc.Delete(c.Context(), middleware.GetWallet(c), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
