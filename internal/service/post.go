package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chirpsocial/backend/internal/models"
)

// PostService owns posts and likes.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost validates and inserts a post. Content must be 1 to 280
// characters, counted in runes.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if utf8.RuneCountInString(content) > models.MaxPostLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrValidation, models.MaxPostLength)
	}

	post := models.Post{
		UserID:  authorID,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, classifyStorageError(err)
	}

	return &post, nil
}

// Like records that an account liked a post. The insert is a no-op on an
// existing pair; zero affected rows means the like already existed.
func (s *PostService) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	like := models.Like{
		UserID: userID,
		PostID: postID,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return nil, classifyStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: already liked", ErrConflict)
	}

	return &like, nil
}

// Unlike removes a like and returns the removed pair. A missing like is
// ErrNotFound.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return nil, classifyStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: like does not exist", ErrNotFound)
	}

	return &models.Like{UserID: userID, PostID: postID}, nil
}

// Likes lists the accounts that liked a post.
func (s *PostService) Likes(ctx context.Context, postID uint) ([]AccountSummary, error) {
	var accounts []AccountSummary
	err := s.db.WithContext(ctx).
		Table("likes").
		Select("users.id, users.email, profiles.display_name, profiles.avatar_url").
		Joins("JOIN users ON users.id = likes.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Find(&accounts).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return accounts, nil
}
