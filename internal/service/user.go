package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chirpsocial/backend/internal/models"
)

// UserService owns account lifecycle: registration, credential checks,
// account lookups and owner-only deletion.
type UserService struct {
	db         *gorm.DB
	bcryptCost int
}

// NewUserService creates a UserService. bcryptCost is the password hashing
// work factor.
func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost}
}

// Register creates an account and its profile as one atomic unit. The email
// must be unused; uniqueness is enforced by the store, not pre-checked.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	if email == "" || password == "" || displayName == "" {
		return nil, fmt.Errorf("%w: email, password and display_name are required", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:      user.ID,
			DisplayName: displayName,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, classifyStorageError(err)
	}

	return &user, nil
}

// Authenticate checks the password against the stored hash and returns the
// account on success. The bcrypt comparison is constant time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, classifyStorageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetAccount returns an account with its profile fields. The profile is
// left-joined so a missing profile yields null fields, never a missing
// account.
func (s *UserService) GetAccount(ctx context.Context, id uint) (*AccountDetail, error) {
	var detail AccountDetail
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.email, users.created_at, profiles.display_name, profiles.bio, profiles.avatar_url, profiles.updated_at").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return &detail, nil
}

// DeleteAccount removes an account. Only the owner may delete it. The
// profile, authored posts, follow edges in both directions and likes by or
// on the account all go with it through the schema's cascade rules, in one
// atomic statement.
func (s *UserService) DeleteAccount(ctx context.Context, id, actingID uint) (*models.User, error) {
	if actingID != id {
		return nil, fmt.Errorf("%w: cannot delete another account", ErrForbidden)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, classifyStorageError(err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return nil, classifyStorageError(err)
	}

	return &user, nil
}
