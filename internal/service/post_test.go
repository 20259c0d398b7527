package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpsocial/backend/internal/models"
	"github.com/chirpsocial/backend/internal/service"
	"github.com/chirpsocial/backend/internal/testhelpers"
)

func TestCreatePost(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")

	post, err := svc.CreatePost(context.Background(), a.ID, "hello world")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, a.ID, post.UserID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostLengthBounds(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, a.ID, "")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.CreatePost(ctx, a.ID, strings.Repeat("x", 281))
	assert.ErrorIs(t, err, service.ErrValidation)

	post, err := svc.CreatePost(ctx, a.ID, strings.Repeat("x", 280))
	require.NoError(t, err)
	assert.NotZero(t, post.ID)

	// The limit counts characters, not bytes.
	post, err = svc.CreatePost(ctx, a.ID, strings.Repeat("ñ", 280))
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestLikeDuplicate(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	ctx := context.Background()
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	b := testhelpers.SeedUser(t, db, "b@x.com", "p2", "B")

	post, err := svc.CreatePost(ctx, b.ID, "hello")
	require.NoError(t, err)

	like, err := svc.Like(ctx, a.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, like.UserID)
	assert.Equal(t, post.ID, like.PostID)

	_, err = svc.Like(ctx, a.ID, post.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	likes, err := svc.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestLikeNonexistentPost(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")

	_, err := svc.Like(context.Background(), a.ID, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUnlike(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	ctx := context.Background()
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	b := testhelpers.SeedUser(t, db, "b@x.com", "p2", "B")

	post, err := svc.CreatePost(ctx, b.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Unlike(ctx, a.ID, post.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Like(ctx, a.ID, post.ID)
	require.NoError(t, err)

	like, err := svc.Unlike(ctx, a.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, like.UserID)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikesListingShape(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := service.NewPostService(db)
	ctx := context.Background()
	a := testhelpers.SeedUser(t, db, "a@x.com", "p1", "A")
	b := testhelpers.SeedUser(t, db, "b@x.com", "p2", "B")

	post, err := svc.CreatePost(ctx, a.ID, "hello")
	require.NoError(t, err)
	_, err = svc.Like(ctx, b.ID, post.ID)
	require.NoError(t, err)

	likes, err := svc.Likes(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, b.ID, likes[0].ID)
	assert.Equal(t, "b@x.com", likes[0].Email)
	require.NotNil(t, likes[0].DisplayName)
	assert.Equal(t, "B", *likes[0].DisplayName)
}
