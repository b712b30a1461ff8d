package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
	"github.com/zacharyr0th/patron-gate/internal/storage"
)

var (
	ErrNotOwner      = errors.New("caller does not own this resource")
	ErrAccessDenied  = errors.New("access denied")
	ErrNotRegistered = errors.New("wallet has no registered user")
)

type ContentService struct {
	repo       *repository.Repository
	blobs      storage.BlobStore
	accessSvc  *AccessService
	sessionSvc *StorageSessionService

	notificationSvc *NotificationService
}

func NewContentService(repo *repository.Repository, blobs storage.BlobStore, accessSvc *AccessService, sessionSvc *StorageSessionService) *ContentService {
	return &ContentService{repo: repo, blobs: blobs, accessSvc: accessSvc, sessionSvc: sessionSvc}
}

func (s *ContentService) SetNotificationService(notificationSvc *NotificationService) {
	s.notificationSvc = notificationSvc
}

type UploadRequest struct {
	SessionID       string
	Filename        string
	Size            int64
	Title           string `validate:"required,max=200"`
	Description     *string
	ContentType     string `validate:"required,oneof=video audio image pdf file"`
	Duration        *int
	TierRequirement *int
	IsPublic        bool
}

// Upload stores a blob against the creator's storage session. The session is
// debited only after the blob lands; the balance check runs up front so an
// underfunded session fails before any bytes move. A consume refusal after a
// successful upload is surfaced to the caller, the blob itself stays.
func (s *ContentService) Upload(ctx context.Context, creatorWallet string, file io.Reader, req UploadRequest) (*model.Content, error) {
	creatorWallet = strings.ToLower(creatorWallet)

	creator, err := s.repo.GetUserByWallet(ctx, creatorWallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	session, err := s.sessionSvc.GetValid(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	cost := s.sessionSvc.EstimateCost(req.Size)
	if session.ChunksetsRemaining < cost {
		return nil, &InsufficientCreditsError{Need: cost, Have: session.ChunksetsRemaining}
	}

	result, err := s.blobs.Upload(ctx, session.ID, req.Filename, file, req.Size)
	if err != nil {
		return nil, err
	}

	if err := s.sessionSvc.Consume(ctx, session.ID, cost); err != nil {
		return nil, err
	}

	content := &model.Content{
		ID:              uuid.NewString(),
		CreatorID:       creator.ID,
		CreatorWallet:   creatorWallet,
		Title:           req.Title,
		Description:     req.Description,
		ContentType:     req.ContentType,
		FileSize:        req.Size,
		Duration:        req.Duration,
		TierRequirement: req.TierRequirement,
		IsPublic:        req.IsPublic,
		BlobCID:         result.CID,
		BlobURL:         result.CID,
		ChunksetID:      &result.BlobName,
		UploadSessionID: &session.ID,
	}

	if err := s.repo.CreateContent(ctx, content); err != nil {
		return nil, err
	}

	if s.notificationSvc != nil && !content.IsPublic {
		s.notificationSvc.NotifyContentPublished(creatorWallet, content.ID, content.Title)
	}

	return content, nil
}

// AccessContext carries request metadata into the audit trail.
type AccessContext struct {
	IPAddress string
	UserAgent string
}

// Get returns the metadata row together with the viewer's access decision.
// Metadata is visible to everyone; only the bytes are gated.
func (s *ContentService) Get(ctx context.Context, viewerWallet, id string) (*model.Content, model.AccessDecision, error) {
	content, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, model.AccessDecision{}, err
	}

	decision, err := s.accessSvc.ResolveItem(ctx, viewerWallet, content.Gate())
	if err != nil {
		return nil, model.AccessDecision{}, err
	}

	go func() {
		if err := s.repo.IncrementViewCount(context.Background(), id); err != nil {
			log.Printf("[Content] view count increment failed for %s: %v", id, err)
		}
	}()

	return content, decision, nil
}

// Stream opens the blob for an authorized viewer. Denied requests are logged
// with access_type denied and reported as a decision, not an error; the
// counter bump and audit row run off the request path.
func (s *ContentService) Stream(ctx context.Context, viewerWallet, id, accessType string, meta AccessContext) (io.ReadCloser, string, *model.Content, model.AccessDecision, error) {
	content, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, "", nil, model.AccessDecision{}, err
	}

	decision, err := s.accessSvc.ResolveItem(ctx, viewerWallet, content.Gate())
	if err != nil {
		return nil, "", nil, model.AccessDecision{}, err
	}

	if !decision.Granted {
		s.logAccess(viewerWallet, id, model.AccessTypeDenied, meta)
		return nil, "", content, decision, nil
	}

	reader, contentType, err := s.blobs.Retrieve(ctx, content.BlobCID)
	if err != nil {
		return nil, "", nil, model.AccessDecision{}, err
	}
	if contentType == "" {
		contentType = content.MIMEType()
	}

	s.logAccess(viewerWallet, id, accessType, meta)
	go func() {
		if err := s.repo.IncrementStreamCount(context.Background(), id); err != nil {
			log.Printf("[Content] stream count increment failed for %s: %v", id, err)
		}
	}()

	return reader, contentType, content, decision, nil
}

func (s *ContentService) logAccess(viewerWallet, contentID, accessType string, meta AccessContext) {
	go func() {
		entry := &model.AccessLog{
			ID:         uuid.NewString(),
			UserWallet: strings.ToLower(viewerWallet),
			ContentID:  contentID,
			AccessType: accessType,
		}
		if meta.IPAddress != "" {
			entry.IPAddress = &meta.IPAddress
		}
		if meta.UserAgent != "" {
			entry.UserAgent = &meta.UserAgent
		}
		if err := s.repo.CreateAccessLog(context.Background(), entry); err != nil {
			log.Printf("[Content] access log write failed for %s: %v", contentID, err)
		}
	}()
}

func (s *ContentService) ListPublic(ctx context.Context, limit, offset int) ([]model.Content, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListPublicContent(ctx, limit, offset)
}

func (s *ContentService) ListByCreator(ctx context.Context, creatorWallet string, limit, offset int) ([]model.Content, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListContentByCreatorWallet(ctx, strings.ToLower(creatorWallet), limit, offset)
}

type UpdateContentRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Description     *string `json:"description"`
	TierRequirement *int    `json:"tier_requirement"`
	IsPublic        *bool   `json:"is_public"`
	ThumbnailURL    *string `json:"thumbnail_url" validate:"omitempty,url"`
}

func (s *ContentService) Update(ctx context.Context, callerWallet, id string, req UpdateContentRequest) (*model.Content, error) {
	content, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(callerWallet, content.CreatorWallet) {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = req.Description
	}
	if req.TierRequirement != nil {
		content.TierRequirement = req.TierRequirement
	}
	if req.IsPublic != nil {
		content.IsPublic = *req.IsPublic
	}
	if req.ThumbnailURL != nil {
		content.ThumbnailURL = req.ThumbnailURL
	}

	if err := s.repo.UpdateContent(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete removes the row and then the blob. Blob removal is best effort, an
// orphaned blob is preferable to a dangling row pointing at nothing.
func (s *ContentService) Delete(ctx context.Context, callerWallet, id string) error {
	content, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(callerWallet, content.CreatorWallet) {
		return ErrNotOwner
	}

	if err := s.repo.DeleteContent(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, content.BlobCID); err != nil {
		log.Printf("[Content] blob removal failed for %s: %v", id, err)
	}
	return nil
}
