package service

import (
	"context"
	"strconv"

	"inkstream/internal/cache"
	"inkstream/internal/middleware"
	"inkstream/internal/models"
	"inkstream/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	posts        *PostService
}

// ReactionState is the reaction view of a post for one viewer.
type ReactionState struct {
	Totals        models.ReactionTotals `json:"totals"`
	UserReactions []models.ReactionType `json:"userReactions"`
}

// ToggleResult reports the outcome of a reaction toggle.
type ToggleResult struct {
	Totals  models.ReactionTotals `json:"totals"`
	Toggled models.ReactionType   `json:"toggled"`
	Active  bool                  `json:"active"`
}

func NewReactionService(reactionRepo repository.ReactionRepository, posts *PostService) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, posts: posts}
}

// Get returns the totals plus the viewer's own active reactions. Totals are
// cached briefly; the per-viewer part never is.
func (s *ReactionService) Get(ctx context.Context, postRef, viewerID string) (*ReactionState, error) {
	postID, err := s.posts.ResolvePostID(ctx, postRef, true)
	if err != nil {
		return nil, err
	}

	state := &ReactionState{UserReactions: []models.ReactionType{}}
	err = cache.Aside(ctx, cache.ReactionTotalsKey(postID), &state.Totals, cache.ReactionTotalsTTL, func() error {
		totals, err := s.reactionRepo.Totals(ctx, postID)
		if err != nil {
			return err
		}
		state.Totals = totals
		return nil
	})
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		kinds, err := s.reactionRepo.UserReactions(ctx, postID, viewerID)
		if err != nil {
			return nil, err
		}
		if kinds != nil {
			state.UserReactions = kinds
		}
	}
	return state, nil
}

// Toggle flips the user's reaction of the given kind on a post: active
// becomes inactive and vice versa.
func (s *ReactionService) Toggle(ctx context.Context, postRef, userID string, kind models.ReactionType) (*ToggleResult, error) {
	if userID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	if !models.ValidReactionType(kind) {
		return nil, models.NewValidationError("Reaction type must be like or clap")
	}

	postID, err := s.posts.ResolvePostID(ctx, postRef, true)
	if err != nil {
		return nil, err
	}

	active, err := s.reactionRepo.Exists(ctx, postID, userID, kind)
	if err != nil {
		return nil, err
	}

	if active {
		err = s.reactionRepo.Delete(ctx, postID, userID, kind)
	} else {
		err = s.reactionRepo.Create(ctx, &models.Reaction{PostID: postID, UserID: userID, Type: kind})
	}
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.ReactionTotalsKey(postID))

	nowActive := !active
	middleware.ReactionToggles.WithLabelValues(string(kind), strconv.FormatBool(nowActive)).Inc()

	totals, err := s.reactionRepo.Totals(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Totals: totals, Toggled: kind, Active: nowActive}, nil
}
