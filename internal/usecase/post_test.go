package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tutorlane/platform-api/internal/model"
)

func TestFindPost(t *testing.T) {
	post := &model.Post{PostID: "POST-AB12CD34", Subject: "Physics", Status: model.PostStatusOpen}
	repo := newFakePostRepo(post)
	u := NewPostUsecase(repo)

	t.Run("by storage id", func(t *testing.T) {
		found, err := u.FindPost(context.Background(), post.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, post.ID, found.ID)
	})

	t.Run("by human-readable id", func(t *testing.T) {
		found, err := u.FindPost(context.Background(), "POST-AB12CD34")
		require.NoError(t, err)
		assert.Equal(t, post.ID, found.ID)
	})

	t.Run("hex miss falls back to post id", func(t *testing.T) {
		// A 24-hex post id that matches no storage id still resolves when
		// some document carries it as its human-readable id.
		hexLike := bson.NewObjectID().Hex()
		other := &model.Post{PostID: hexLike, Subject: "Chemistry", Status: model.PostStatusOpen}
		repo.posts[bson.NewObjectID()] = other

		found, err := u.FindPost(context.Background(), hexLike)
		require.NoError(t, err)
		assert.Equal(t, hexLike, found.PostID)
	})

	t.Run("miss everywhere", func(t *testing.T) {
		_, err := u.FindPost(context.Background(), "POST-MISSING")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	post := &model.Post{PostID: "POST-AB12CD34", Status: model.PostStatusOpen}
	repo := newFakePostRepo(post)
	u := NewPostUsecase(repo)

	updated, err := u.UpdateStatus(context.Background(), post.ID.Hex(), model.PostStatusMatched)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusMatched, updated.Status)
}

func TestUpdateStatus_InvalidStatusDoesNotMutate(t *testing.T) {
	post := &model.Post{PostID: "POST-AB12CD34", Status: model.PostStatusOpen}
	repo := newFakePostRepo(post)
	u := NewPostUsecase(repo)

	_, err := u.UpdateStatus(context.Background(), post.ID.Hex(), model.PostStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidPostStatus)
	assert.Equal(t, model.PostStatusOpen, post.Status)
}

func TestUpdateStatus_UnknownPost(t *testing.T) {
	u := NewPostUsecase(newFakePostRepo())

	_, err := u.UpdateStatus(context.Background(), "POST-MISSING", model.PostStatusClosed)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
