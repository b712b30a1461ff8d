package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type PostService struct {
	repo      *repository.Repository
	accessSvc *AccessService
}

func NewPostService(repo *repository.Repository, accessSvc *AccessService) *PostService {
	return &PostService{repo: repo, accessSvc: accessSvc}
}

type CreatePostRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Body            string `json:"body" validate:"required"`
	PostType        string `json:"post_type" validate:"omitempty,oneof=text announcement poll"`
	TierRequirement *int   `json:"tier_requirement"`
	IsPublic        bool   `json:"is_public"`
}

func (s *PostService) Create(ctx context.Context, creatorWallet string, req CreatePostRequest) (*model.Post, error) {
	creatorWallet = strings.ToLower(creatorWallet)

	creator, err := s.repo.GetUserByWallet(ctx, creatorWallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	postType := req.PostType
	if postType == "" {
		postType = "text"
	}

	post := &model.Post{
		ID:              uuid.NewString(),
		CreatorID:       creator.ID,
		CreatorWallet:   creatorWallet,
		Title:           req.Title,
		Body:            req.Body,
		PostType:        postType,
		TierRequirement: req.TierRequirement,
		IsPublic:        req.IsPublic,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get resolves the viewer's access and locks the body when the gate fails.
// A missing post is the only error path; denial is data, not an error.
func (s *PostService) Get(ctx context.Context, viewerWallet, id string) (*model.LockedPost, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	locked, err := s.lockFor(ctx, viewerWallet, *post)
	if err != nil {
		return nil, err
	}
	return &locked, nil
}

// List returns the feed with each post locked or unlocked for the viewer.
func (s *PostService) List(ctx context.Context, viewerWallet string, limit, offset int) ([]model.LockedPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.repo.ListPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.lockAll(ctx, viewerWallet, posts)
}

func (s *PostService) ListByCreator(ctx context.Context, viewerWallet, creatorWallet string, limit, offset int) ([]model.LockedPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.repo.ListPostsByCreatorWallet(ctx, strings.ToLower(creatorWallet), limit, offset)
	if err != nil {
		return nil, err
	}
	return s.lockAll(ctx, viewerWallet, posts)
}

func (s *PostService) lockAll(ctx context.Context, viewerWallet string, posts []model.Post) ([]model.LockedPost, error) {
	out := make([]model.LockedPost, 0, len(posts))
	for _, post := range posts {
		locked, err := s.lockFor(ctx, viewerWallet, post)
		if err != nil {
			return nil, err
		}
		out = append(out, locked)
	}
	return out, nil
}

func (s *PostService) lockFor(ctx context.Context, viewerWallet string, post model.Post) (model.LockedPost, error) {
	decision, err := s.accessSvc.ResolveItem(ctx, viewerWallet, post.Gate())
	if err != nil {
		return model.LockedPost{}, err
	}
	if !decision.Granted {
		return post.Lock(decision.Reason), nil
	}
	return post.Unlocked(), nil
}

type UpdatePostRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Body            *string `json:"body"`
	TierRequirement *int    `json:"tier_requirement"`
	IsPublic        *bool   `json:"is_public"`
}

func (s *PostService) Update(ctx context.Context, callerWallet, id string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(callerWallet, post.CreatorWallet) {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.TierRequirement != nil {
		post.TierRequirement = req.TierRequirement
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, callerWallet, id string) error {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(callerWallet, post.CreatorWallet) {
		return ErrNotOwner
	}
	return s.repo.DeletePost(ctx, id)
}
