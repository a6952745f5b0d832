package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// DefaultRecipesLimit caps the recipes nested under each author in a
// subscriptions listing.
const DefaultRecipesLimit = 3

// SubscriptionService implements the follow toggle and the followed-authors
// listing.
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new SubscriptionService instance
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscription is one followed author with a capped slice of their recipes.
type Subscription struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

// Follow subscribes the follower to the author's recipes. Self-follow is
// rejected before any store access.
func (s *SubscriptionService) Follow(ctx context.Context, followerID, authorID uuid.UUID, recipesLimit int) (*Subscription, error) {
	if followerID == authorID {
		return nil, newValidationError("author", "cannot follow yourself")
	}
	author, err := s.findUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	follow := models.Follow{ID: uuid.New(), FollowerID: followerID, AuthorID: authorID}
	if err := addPair(s.db.WithContext(ctx), &follow, "already following this author"); err != nil {
		return nil, err
	}
	return s.subscription(ctx, author, recipesLimit)
}

// Unfollow removes the subscription.
func (s *SubscriptionService) Unfollow(ctx context.Context, followerID, authorID uuid.UUID) error {
	if _, err := s.findUser(ctx, authorID); err != nil {
		return err
	}
	return removePair[models.Follow](s.db.WithContext(ctx),
		"not following this author", "follower_id = ? AND author_id = ?", followerID, authorID)
}

// IsFollowing reports whether the follower subscribes to the author.
func (s *SubscriptionService) IsFollowing(ctx context.Context, followerID, authorID uuid.UUID) bool {
	var count int64
	s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).Count(&count)
	return count > 0
}

// Subscriptions lists the authors the user follows, newest subscription
// first, each with up to recipesLimit of their recipes.
func (s *SubscriptionService) Subscriptions(ctx context.Context, followerID uuid.UUID, page, limit, recipesLimit int) ([]Subscription, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	var follows []models.Follow
	err = s.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&follows).Error
	if err != nil {
		return nil, 0, err
	}

	subs := make([]Subscription, 0, len(follows))
	for _, follow := range follows {
		author, err := s.findUser(ctx, follow.AuthorID)
		if err != nil {
			return nil, 0, err
		}
		sub, err := s.subscription(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}

func (s *SubscriptionService) subscription(ctx context.Context, author *models.User, recipesLimit int) (*Subscription, error) {
	if recipesLimit < 1 {
		recipesLimit = DefaultRecipesLimit
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).Count(&count).Error
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err = s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("created_at DESC, id DESC").
		Limit(recipesLimit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return &Subscription{Author: *author, Recipes: recipes, RecipesCount: count}, nil
}

func (s *SubscriptionService) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
