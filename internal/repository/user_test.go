package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func TestUserRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{Username: "alice", Name: "Alice", Email: "a@x.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "hash", got.Password)
	})

	t.Run("GetByID unknown is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})

	t.Run("GetByUsername and GetByEmail miss returns nil", func(t *testing.T) {
		u, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = repo.GetByEmail(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", Name: "Dup", Email: "dup@x.com"})
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "dup", Name: "Dup", Email: "a@x.com"})
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
	})
}

func TestUserRepository_EdgeListsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "a@x.com"}
	require.NoError(t, repo.Create(ctx, user))

	user.Following = user.Following.Prepend(5).Prepend(9)
	user.Followers = models.IDList{3}
	user.LikedPosts = models.IDList{11, 12}
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{9, 5}, got.Following)
	assert.Equal(t, models.IDList{3}, got.Followers)
	assert.Equal(t, models.IDList{11, 12}, got.LikedPosts)
}

func TestUserRepository_SaveBoth(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := &models.User{Username: "alice", Email: "a@x.com"}
	bob := &models.User{Username: "bob", Email: "b@x.com"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	alice.Following = alice.Following.Prepend(bob.ID)
	bob.Followers = bob.Followers.Prepend(alice.ID)
	require.NoError(t, repo.SaveBoth(ctx, alice, bob))

	gotAlice, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	gotBob, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, gotAlice.Following.Contains(bob.ID))
	assert.True(t, gotBob.Followers.Contains(alice.ID))
}

func TestUserRepository_List_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		require.NoError(t, repo.Create(ctx, &models.User{Username: name, Email: name + "@x.com"}))
	}

	first, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	second, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, "u1", first[0].Username)
	assert.Equal(t, "u2", first[1].Username)
	assert.Equal(t, "u3", second[0].Username)
	assert.Equal(t, "u4", second[1].Username)
}

func TestUserRepository_Delete_CascadesAndPurges(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	alice := &models.User{Username: "alice", Email: "a@x.com"}
	bob := &models.User{Username: "bob", Email: "b@x.com"}
	require.NoError(t, userRepo.Create(ctx, alice))
	require.NoError(t, userRepo.Create(ctx, bob))

	alicePost := &models.Post{Body: "by alice", AuthorID: alice.ID, AuthorUsername: "alice"}
	require.NoError(t, postRepo.CreateWithAuthor(ctx, alicePost, alice))
	bobPost := &models.Post{Body: "by bob", AuthorID: bob.ID, AuthorUsername: "bob"}
	require.NoError(t, postRepo.CreateWithAuthor(ctx, bobPost, bob))

	// Bob follows Alice, likes her post; Alice likes his.
	bob.Following = bob.Following.Prepend(alice.ID)
	alice.Followers = alice.Followers.Prepend(bob.ID)
	require.NoError(t, userRepo.SaveBoth(ctx, bob, alice))

	bob.LikedPosts = bob.LikedPosts.Prepend(alicePost.ID)
	alicePost.Likes = alicePost.Likes.Prepend(bob.ID)
	alicePost.TotalLikes = 1
	require.NoError(t, postRepo.SaveWithUser(ctx, alicePost, bob))

	alice.LikedPosts = alice.LikedPosts.Prepend(bobPost.ID)
	bobPost.Likes = bobPost.Likes.Prepend(alice.ID)
	bobPost.TotalLikes = 1
	require.NoError(t, postRepo.SaveWithUser(ctx, bobPost, alice))

	require.NoError(t, userRepo.Delete(ctx, alice))

	_, err := userRepo.GetByID(ctx, alice.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	// Alice's post is gone with her.
	_, err = postRepo.GetByID(ctx, alicePost.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	// No reference to Alice or her posts survives on Bob's side.
	gotBob, err := userRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, gotBob.Following.Contains(alice.ID))
	assert.False(t, gotBob.LikedPosts.Contains(alicePost.ID))

	// Alice's like is withdrawn from Bob's post and the total recomputed.
	gotPost, err := postRepo.GetByID(ctx, bobPost.ID)
	require.NoError(t, err)
	assert.False(t, gotPost.Likes.Contains(alice.ID))
	assert.Zero(t, gotPost.TotalLikes)
}
