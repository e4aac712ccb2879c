package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

const (
	MsgFollowed         = "Successfully followed leader"
	MsgAlreadyFollowing = "Already following this leader"
	MsgUnfollowed       = "Successfully unfollowed leader"
)

type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
	posts   repositories.PostRepository
	pub     publisher
	now     Clock
}

func NewFollowService(
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	sink events.Sink,
	log *slog.Logger,
	now Clock,
) *FollowService {
	if now == nil {
		now = SystemClock
	}
	return &FollowService{follows: follows, users: users, posts: posts, pub: publisher{sink: sink, log: log}, now: now}
}

// Follow creates the edge once. Only the call that inserts it notifies the
// leader; repeats return MsgAlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, worshiper *models.User, leaderID uint) (string, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can follow leaders"); err != nil {
		return "", err
	}
	target, err := s.users.GetUserByID(ctx, leaderID)
	if err != nil {
		return "", apperr.FromStore(err, "User not found")
	}
	if !target.IsLeader() {
		return "", apperr.Validation("User is not a leader")
	}
	if target.ID == worshiper.ID {
		return "", apperr.Validation("Cannot follow yourself")
	}

	created, err := s.follows.CreateFollow(ctx, &models.Follow{WorshiperID: worshiper.ID, LeaderID: leaderID})
	if err != nil {
		return "", apperr.FromStore(err, "User not found")
	}
	if !created {
		return MsgAlreadyFollowing, nil
	}

	err = s.pub.emit(ctx, events.Event{
		Type:          models.NotificationNewFollower,
		RecipientID:   leaderID,
		ActorID:       worshiper.ID,
		Message:       fmt.Sprintf("%s started following you", worshiper.Name),
		ReferenceType: models.ReferenceUser,
		ReferenceID:   worshiper.ID,
		OccurredAt:    s.now(),
	})
	if err != nil {
		return "", err
	}
	return MsgFollowed, nil
}

// Unfollow succeeds whether or not the edge existed.
func (s *FollowService) Unfollow(ctx context.Context, worshiper *models.User, leaderID uint) (string, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can unfollow leaders"); err != nil {
		return "", err
	}
	if err := s.follows.DeleteFollow(ctx, worshiper.ID, leaderID); err != nil {
		return "", apperr.FromStore(err, "User not found")
	}
	return MsgUnfollowed, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, worshiperID, leaderID uint) (bool, error) {
	ok, err := s.follows.IsFollowing(ctx, worshiperID, leaderID)
	if err != nil {
		return false, apperr.FromStore(err, "User not found")
	}
	return ok, nil
}

func (s *FollowService) ListFollowedLeaders(ctx context.Context, worshiper *models.User) ([]models.LeaderProfile, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can view followed leaders"); err != nil {
		return nil, err
	}
	leaders, err := s.follows.GetFollowedLeaders(ctx, worshiper.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	out := make([]models.LeaderProfile, 0, len(leaders))
	for i := range leaders {
		p, err := leaderProfile(ctx, s.follows, s.posts, &leaders[i], true)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *FollowService) ListFollowers(ctx context.Context, leader *models.User) ([]models.FollowerResponse, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can view followers"); err != nil {
		return nil, err
	}
	follows, err := s.follows.GetFollowers(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	out := make([]models.FollowerResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, models.FollowerResponse{
			WorshiperID:  f.WorshiperID,
			Name:         f.Worshiper.Name,
			ProfilePhoto: f.Worshiper.ProfilePhoto,
			FollowedAt:   f.CreatedAt,
		})
	}
	return out, nil
}

func leaderProfile(ctx context.Context, follows repositories.FollowRepository, posts repositories.PostRepository, leader *models.User, isFollowing bool) (*models.LeaderProfile, error) {
	followers, err := follows.GetFollowersCount(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	postCount, err := posts.CountPublishedByLeader(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	return &models.LeaderProfile{
		LeaderID:       leader.ID,
		Name:           leader.Name,
		Faith:          leader.Faith,
		ProfilePhoto:   leader.ProfilePhoto,
		Bio:            leader.Bio,
		IsFollowing:    isFollowing,
		FollowersCount: followers,
		PostsCount:     postCount,
	}, nil
}
