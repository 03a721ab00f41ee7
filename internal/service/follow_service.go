package service

import (
	"context"
	"errors"

	"inkstream/internal/models"
	"inkstream/internal/repository"

	"gorm.io/gorm"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

func (s *FollowService) ensureUser(ctx context.Context, userID string) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("User not found")
	}
	return err
}

// Stats returns a profile's follower and following counts. IsFollowing is
// filled only when a viewer is known.
func (s *FollowService) Stats(ctx context.Context, profileID, viewerID string) (*models.FollowStats, error) {
	if err := s.ensureUser(ctx, profileID); err != nil {
		return nil, err
	}

	followers, following, err := s.followRepo.Counts(ctx, profileID)
	if err != nil {
		return nil, err
	}

	stats := &models.FollowStats{Followers: followers, Following: following}
	if viewerID != "" && viewerID != profileID {
		isFollowing, err := s.followRepo.Exists(ctx, viewerID, profileID)
		if err != nil {
			return nil, err
		}
		stats.IsFollowing = isFollowing
	}
	return stats, nil
}

// Toggle follows the profile when no edge exists, unfollows otherwise, and
// returns the resulting stats.
func (s *FollowService) Toggle(ctx context.Context, viewerID, profileID string) (*models.FollowStats, error) {
	if viewerID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	if viewerID == profileID {
		return nil, models.NewInvalidOperationError("You cannot follow yourself")
	}
	if err := s.ensureUser(ctx, profileID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.Exists(ctx, viewerID, profileID)
	if err != nil {
		return nil, err
	}
	if following {
		err = s.followRepo.Delete(ctx, viewerID, profileID)
	} else {
		err = s.followRepo.Create(ctx, viewerID, profileID)
	}
	if err != nil {
		return nil, err
	}

	return s.Stats(ctx, profileID, viewerID)
}
