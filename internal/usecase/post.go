package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/repository"
)

// PostUsecase defines the tutoring post operations that go beyond plain CRUD.
type PostUsecase interface {
	FindPost(ctx context.Context, idOrPostID string) (*model.Post, error)
	UpdateStatus(ctx context.Context, idOrPostID string, status model.PostStatus) (*model.Post, error)
}

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrInvalidPostStatus = errors.New("post status must be open, matched, closed or hold")
)

type postUsecase struct {
	postRepo repository.PostRepository
}

func NewPostUsecase(postRepo repository.PostRepository) PostUsecase {
	return &postUsecase{postRepo: postRepo}
}

// FindPost resolves a post by id shape: a 24-hex string is tried as a
// storage id first, anything else (or a miss) falls back to the
// human-readable post id.
func (u *postUsecase) FindPost(ctx context.Context, idOrPostID string) (*model.Post, error) {
	if _, err := bson.ObjectIDFromHex(idOrPostID); err == nil {
		post, err := u.postRepo.GetPost(ctx, idOrPostID)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	post, err := u.postRepo.GetPostByPostID(ctx, idOrPostID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// UpdateStatus validates the target status before any lookup or write;
// an invalid value never mutates the post.
func (u *postUsecase) UpdateStatus(
	ctx context.Context,
	idOrPostID string,
	status model.PostStatus,
) (*model.Post, error) {
	if !status.Valid() {
		return nil, ErrInvalidPostStatus
	}

	post, err := u.FindPost(ctx, idOrPostID)
	if err != nil {
		return nil, err
	}

	updated, err := u.postRepo.SetStatus(ctx, post.ID, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return updated, nil
}
