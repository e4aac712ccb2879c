package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"gorm.io/gorm"
)

// LeaderService is the worshiper-facing leader directory.
type LeaderService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	posts   repositories.PostRepository
}

func NewLeaderService(users repositories.UserRepository, follows repositories.FollowRepository, posts repositories.PostRepository) *LeaderService {
	return &LeaderService{users: users, follows: follows, posts: posts}
}

func (s *LeaderService) ListLeaders(ctx context.Context, viewer *models.User) ([]models.LeaderProfile, error) {
	if err := requireRole(viewer, models.RoleWorshiper, "Only worshipers can browse leaders"); err != nil {
		return nil, err
	}
	leaders, err := s.users.ListActiveLeaders(ctx)
	if err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	following, err := s.follows.GetFollowingIDs(ctx, viewer.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	followed := make(map[uint]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	out := make([]models.LeaderProfile, 0, len(leaders))
	for i := range leaders {
		p, err := leaderProfile(ctx, s.follows, s.posts, &leaders[i], followed[leaders[i].ID])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *LeaderService) GetLeaderProfile(ctx context.Context, viewer *models.User, leaderID uint) (*models.LeaderProfile, error) {
	if err := requireRole(viewer, models.RoleWorshiper, "Only worshipers can browse leaders"); err != nil {
		return nil, err
	}
	leader, err := s.users.GetLeaderByID(ctx, leaderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Leader with ID %d not found", leaderID))
		}
		return nil, apperr.FromStore(err, "Leader not found")
	}
	isFollowing, err := s.follows.IsFollowing(ctx, viewer.ID, leaderID)
	if err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	return leaderProfile(ctx, s.follows, s.posts, leader, isFollowing)
}
