package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirpsocial/backend/internal/models"
	"github.com/chirpsocial/backend/internal/service"
	"github.com/chirpsocial/backend/internal/testhelpers"
)

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), "a@x.com", "p1", "A")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "p1", user.PasswordHash)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "A", profile.DisplayName)
	assert.Nil(t, profile.Bio)
	assert.Nil(t, profile.AvatarURL)
}

func TestRegisterMissingFields(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)

	for _, tt := range []struct {
		name                          string
		email, password, displayName string
	}{
		{"empty email", "", "p", "A"},
		{"empty password", "a@x.com", "", "A"},
		{"empty display name", "a@x.com", "p", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password, tt.displayName)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), "a@x.com", "p1", "A")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "p2", "B")
	assert.ErrorIs(t, err, service.ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The failed registration must not leave an orphan profile behind.
	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestAuthenticate(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)

	registered, err := svc.Register(context.Background(), "a@x.com", "p1", "A")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "missing@x.com", "p1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestGetAccount(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)
	user := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")

	account, err := svc.GetAccount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.ID)
	assert.Equal(t, "a@x.com", account.Email)
	require.NotNil(t, account.DisplayName)
	assert.Equal(t, "A", *account.DisplayName)

	_, err = svc.GetAccount(context.Background(), user.ID+100)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetAccountWithoutProfile(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)
	user := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error)

	// The profile is left-joined: its absence nulls the profile fields but
	// never suppresses the account row.
	account, err := svc.GetAccount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Nil(t, account.DisplayName)
	assert.Nil(t, account.Bio)
	assert.Nil(t, account.AvatarURL)
}

func TestDeleteAccountForbidden(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	b := testhelpers.SeedUser(t, db, "b@x.com", "p2", "B")

	_, err := svc.DeleteAccount(context.Background(), a.ID, b.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestDeleteAccountNotFound(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewUserService(db, bcrypt.MinCost)

	_, err := svc.DeleteAccount(context.Background(), 999, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	users := service.NewUserService(db, bcrypt.MinCost)
	follows := service.NewFollowService(db)
	posts := service.NewPostService(db)
	ctx := context.Background()

	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	b := testhelpers.SeedUser(t, db, "b@x.com", "p2", "B")

	// A follows B and vice versa, both post, both like each other's post.
	_, err := follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = follows.Follow(ctx, b.ID, a.ID)
	require.NoError(t, err)

	postByA, err := posts.CreatePost(ctx, a.ID, "post by A")
	require.NoError(t, err)
	postByB, err := posts.CreatePost(ctx, b.ID, "post by B")
	require.NoError(t, err)

	_, err = posts.Like(ctx, a.ID, postByB.ID)
	require.NoError(t, err)
	_, err = posts.Like(ctx, b.ID, postByA.ID)
	require.NoError(t, err)

	deleted, err := users.DeleteAccount(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", deleted.Email)

	// Everything hanging off A is gone: profile, posts, edges in both
	// directions, likes by A and likes on A's posts.
	var n int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", a.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Post{}).Where("user_id = ?", a.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = ? OR following_id = ?", a.ID, a.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Like{}).Where("user_id = ? OR post_id = ?", a.ID, postByA.ID).Count(&n).Error)
	assert.Zero(t, n)

	// B and B's post survive.
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
