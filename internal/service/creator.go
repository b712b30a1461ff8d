package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

var ErrAlreadyCreator = errors.New("user is already a creator")

type CreatorService struct {
	repo *repository.Repository
}

func NewCreatorService(repo *repository.Repository) *CreatorService {
	return &CreatorService{repo: repo}
}

type InitializeCreatorRequest struct {
	DisplayName string            `json:"display_name" validate:"required,min=2,max=64"`
	Category    *string           `json:"category" validate:"omitempty,max=32"`
	SocialLinks model.SocialLinks `json:"social_links"`
}

// Initialize promotes the user and creates their creator profile. The on-chain
// registry initialization is signed client-side; this records the platform
// side of it.
func (s *CreatorService) Initialize(ctx context.Context, userID string, req InitializeCreatorRequest) (*model.CreatorProfile, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsCreator {
		return nil, ErrAlreadyCreator
	}

	if err := s.repo.PromoteToCreator(ctx, userID); err != nil {
		return nil, err
	}

	profile := &model.CreatorProfile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Category:    req.Category,
		SocialLinks: req.SocialLinks,
	}
	if err := s.repo.CreateCreatorProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *CreatorService) GetByWallet(ctx context.Context, wallet string) (*model.CreatorWithProfile, error) {
	user, err := s.repo.GetUserByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, err
	}
	if !user.IsCreator {
		return nil, repository.ErrCreatorNotFound
	}

	profile, err := s.repo.GetCreatorProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrCreatorNotFound) {
		return nil, err
	}

	return &model.CreatorWithProfile{User: *user, Profile: profile}, nil
}

func (s *CreatorService) List(ctx context.Context, category string, limit, offset int) ([]model.CreatorWithProfile, error) {
	users, err := s.repo.ListCreators(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}

	creators := make([]model.CreatorWithProfile, 0, len(users))
	for i := range users {
		profile, err := s.repo.GetCreatorProfile(ctx, users[i].ID)
		if err != nil && !errors.Is(err, repository.ErrCreatorNotFound) {
			return nil, err
		}
		creators = append(creators, model.CreatorWithProfile{User: users[i], Profile: profile})
	}
	return creators, nil
}

type UpdateCreatorRequest struct {
	DisplayName *string            `json:"display_name" validate:"omitempty,min=2,max=64"`
	BannerURL   *string            `json:"banner_url" validate:"omitempty,url"`
	Category    *string            `json:"category" validate:"omitempty,max=32"`
	SocialLinks *model.SocialLinks `json:"social_links"`
}

func (s *CreatorService) UpdateProfile(ctx context.Context, userID string, req UpdateCreatorRequest) (*model.CreatorProfile, error) {
	profile, err := s.repo.GetCreatorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.BannerURL != nil {
		profile.BannerURL = req.BannerURL
	}
	if req.Category != nil {
		profile.Category = req.Category
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = *req.SocialLinks
	}

	if err := s.repo.UpdateCreatorProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatorStats aggregates the analytics surfaced to a creator's dashboard.
type CreatorStats struct {
	ActiveMembers int             `json:"active_members"`
	TotalContent  int             `json:"total_content"`
	TotalRevenue  int64           `json:"total_revenue"`
	TopContent    []model.Content `json:"top_content"`
}

func (s *CreatorService) Stats(ctx context.Context, wallet string) (*CreatorStats, error) {
	wallet = strings.ToLower(wallet)

	activeMembers, err := s.repo.CountActiveMembers(ctx, wallet)
	if err != nil {
		return nil, err
	}

	totalContent, err := s.repo.CountContentByCreator(ctx, wallet)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.repo.GetTotalRevenue(ctx, wallet)
	if err != nil {
		return nil, err
	}

	topContent, err := s.repo.TopContentByStreams(ctx, wallet, 5)
	if err != nil {
		return nil, err
	}

	return &CreatorStats{
		ActiveMembers: activeMembers,
		TotalContent:  totalContent,
		TotalRevenue:  totalRevenue,
		TopContent:    topContent,
	}, nil
}
