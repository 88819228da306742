package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/model"
)

// PostRepository defines the interface for tutoring post operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	GetPostByPostID(ctx context.Context, postID string) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, params UpdatePostParams) (*model.Post, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status model.PostStatus) (*model.Post, error)
	AddApplicant(ctx context.Context, postID, teacherID bson.ObjectID) error
	PullApplicant(ctx context.Context, postID, teacherID bson.ObjectID) error
	DeletePost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, page PageParams) ([]*model.Post, int64, error)
}

// UpdatePostParams defines the optional parameters for updating a post.
type UpdatePostParams struct {
	Subject  *string
	Class    *string
	Board    *string
	Location *string
	Budget   *int64
	Details  *string
}

const postCollection = "posts"

var postSearchFields = []string{"subject", "class", "board", "location"}

type postMongoRepository struct {
	db *mongo.Database
}

func NewPostMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PostRepository {
	collection := db.Collection(postCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "guardian_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create post indexes")
	}

	return &postMongoRepository{db: db}
}

func (r *postMongoRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = model.PostStatusOpen
	}
	if post.Applicants == nil {
		post.Applicants = []bson.ObjectID{}
	}

	result, err := r.db.Collection(postCollection).InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		post.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return post, nil
}

func (r *postMongoRepository) GetPost(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *postMongoRepository) GetPostByPostID(ctx context.Context, postID string) (*model.Post, error) {
	return r.findOne(ctx, bson.M{"post_id": postID})
}

func (r *postMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	result := r.db.Collection(postCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) UpdatePost(
	ctx context.Context,
	id string,
	params UpdatePostParams,
) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Subject != nil {
		updateMap["subject"] = *params.Subject
	}
	if params.Class != nil {
		updateMap["class"] = *params.Class
	}
	if params.Board != nil {
		updateMap["board"] = *params.Board
	}
	if params.Location != nil {
		updateMap["location"] = *params.Location
	}
	if params.Budget != nil {
		updateMap["budget"] = *params.Budget
	}
	if params.Details != nil {
		updateMap["details"] = *params.Details
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no post fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(postCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) SetStatus(
	ctx context.Context,
	id bson.ObjectID,
	status model.PostStatus,
) (*model.Post, error) {
	result := r.db.Collection(postCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) AddApplicant(ctx context.Context, postID, teacherID bson.ObjectID) error {
	_, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": postID},
		bson.M{
			"$addToSet": bson.M{"applicants": teacherID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *postMongoRepository) PullApplicant(ctx context.Context, postID, teacherID bson.ObjectID) error {
	_, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": postID},
		bson.M{
			"$pull": bson.M{"applicants": teacherID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *postMongoRepository) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(postCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) ListPosts(ctx context.Context, page PageParams) ([]*model.Post, int64, error) {
	return listPage[model.Post](ctx, r.db.Collection(postCollection), page, postSearchFields)
}
