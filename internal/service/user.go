package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreate resolves a wallet to its user row, creating one on first login.
func (s *UserService) GetOrCreate(ctx context.Context, wallet string) (*model.User, error) {
	wallet = strings.ToLower(wallet)

	user, err := s.repo.GetUserByWallet(ctx, wallet)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user = &model.User{
		ID:            "user_" + wallet,
		WalletAddress: wallet,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByWallet(ctx context.Context, wallet string) (*model.User, error) {
	return s.repo.GetUserByWallet(ctx, strings.ToLower(wallet))
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=32"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = req.Username
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
