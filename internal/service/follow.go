package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chirpsocial/backend/internal/models"
)

// FollowService owns the directed follow graph.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow inserts a follow edge. Self-follows are rejected; a duplicate edge
// surfaces as ErrConflict from the composite key, and following a
// nonexistent account as ErrNotFound from the foreign key.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	if followingID == 0 {
		return nil, fmt.Errorf("%w: following_id is required", ErrValidation)
	}
	if followerID == followingID {
		return nil, fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}

	edge := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		return nil, classifyStorageError(err)
	}

	return &edge, nil
}

// Unfollow removes a follow edge and returns the removed pair. A missing
// edge is ErrNotFound.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return nil, classifyStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: follow relation does not exist", ErrNotFound)
	}

	return &models.Follow{FollowerID: followerID, FollowingID: followingID}, nil
}

// Following lists the accounts the given account follows. Follow lists are
// public; no authorization applies here.
func (s *FollowService) Following(ctx context.Context, accountID uint) ([]AccountSummary, error) {
	var accounts []AccountSummary
	err := s.db.WithContext(ctx).
		Table("follows").
		Select("users.id, users.email, profiles.display_name, profiles.avatar_url").
		Joins("JOIN users ON users.id = follows.following_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("follows.follower_id = ?", accountID).
		Find(&accounts).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return accounts, nil
}

// Followers lists the accounts following the given account.
func (s *FollowService) Followers(ctx context.Context, accountID uint) ([]AccountSummary, error) {
	var accounts []AccountSummary
	err := s.db.WithContext(ctx).
		Table("follows").
		Select("users.id, users.email, profiles.display_name, profiles.avatar_url").
		Joins("JOIN users ON users.id = follows.follower_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("follows.following_id = ?", accountID).
		Find(&accounts).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return accounts, nil
}
