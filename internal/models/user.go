package models

import (
	"time"
)

// User is an account row. The password is only ever stored hashed.
// Deleting a user cascades to its profile, posts, follows and likes at the
// database layer.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Profile holds the public-facing fields of an account. Exactly one per
// user, created together with it.
type Profile struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	AvatarURL   *string   `gorm:"size:255" json:"avatar_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}
