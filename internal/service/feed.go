package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Feed result caps. Global and follow feeds are deliberately uncapped;
// Latest and Personal carry fixed limits. These are distinct operations,
// not one query with a default.
const (
	LatestFeedLimit   = 10
	PersonalFeedLimit = 20
)

// FeedService assembles read-only, joined views over posts, the follow
// graph and profiles. It mutates nothing and caches nothing; every call
// computes its result fresh.
type FeedService struct {
	db *gorm.DB
	// searchLanguage is the PostgreSQL text search configuration used by
	// Search, e.g. "spanish".
	searchLanguage string
}

// NewFeedService creates a FeedService.
func NewFeedService(db *gorm.DB, searchLanguage string) *FeedService {
	return &FeedService{db: db, searchLanguage: searchLanguage}
}

// posts is the base query every feed shares: post joined with its author,
// profile left-joined so a missing profile never drops the post, newest
// first with ascending id as the deterministic tie-break.
func (s *FeedService) posts(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.content, posts.created_at, users.id AS user_id, users.email, profiles.display_name, profiles.avatar_url").
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Order("posts.created_at DESC, posts.id ASC")
}

// Global returns every post, most recent first.
func (s *FeedService) Global(ctx context.Context) ([]FeedItem, error) {
	var items []FeedItem
	if err := s.posts(ctx).Find(&items).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}

// Latest returns the newest LatestFeedLimit posts.
func (s *FeedService) Latest(ctx context.Context) ([]FeedItem, error) {
	var items []FeedItem
	if err := s.posts(ctx).Limit(LatestFeedLimit).Find(&items).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}

// Personal returns up to PersonalFeedLimit posts authored by accounts the
// viewer follows.
func (s *FeedService) Personal(ctx context.Context, viewerID uint) ([]FeedItem, error) {
	var items []FeedItem
	err := s.posts(ctx).
		Joins("JOIN follows ON follows.following_id = posts.user_id").
		Where("follows.follower_id = ?", viewerID).
		Limit(PersonalFeedLimit).
		Find(&items).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}

// FollowFeed is the uncapped variant of Personal: every post by every
// account the viewer follows.
func (s *FeedService) FollowFeed(ctx context.Context, viewerID uint) ([]FeedItem, error) {
	var items []FeedItem
	err := s.posts(ctx).
		Joins("JOIN follows ON follows.following_id = posts.user_id").
		Where("follows.follower_id = ?", viewerID).
		Find(&items).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}

// Timeline returns every post by one author.
func (s *FeedService) Timeline(ctx context.Context, authorID uint) ([]FeedItem, error) {
	var items []FeedItem
	err := s.posts(ctx).
		Where("posts.user_id = ?", authorID).
		Find(&items).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}

// Search returns posts matching the term, ordered by recency rather than
// match rank. On PostgreSQL it uses stemmed full-text search in the
// configured language; other dialects fall back to a case-insensitive
// substring match.
func (s *FeedService) Search(ctx context.Context, term string) ([]FeedItem, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrValidation)
	}

	query := s.posts(ctx)
	if s.db.Dialector.Name() == "postgres" {
		match := fmt.Sprintf("to_tsvector('%s', posts.content) @@ plainto_tsquery('%s', ?)",
			s.searchLanguage, s.searchLanguage)
		query = query.Where(match, term)
	} else {
		query = query.Where("LOWER(posts.content) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var items []FeedItem
	if err := query.Find(&items).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	return items, nil
}
