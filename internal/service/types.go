package service

import "time"

// AccountSummary is the joined account row returned by follow and like
// listings. Profile fields come from a left join and may be null when the
// profile row is absent.
type AccountSummary struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// AccountDetail is an account joined with its full profile.
type AccountDetail struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	DisplayName *string    `json:"display_name"`
	Bio         *string    `json:"bio"`
	AvatarURL   *string    `json:"avatar_url"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// FeedItem is a post joined with its author for feed, timeline and search
// results.
type FeedItem struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}
