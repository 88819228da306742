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

// ApplicationRepository defines the interface for application operations.
//
// The two conditional operations (MarkWithdrawalRequested, DeleteIfStatus)
// only succeed when the document is in the expected prior status; they are
// the serialization points for the withdrawal lifecycle.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application *model.Application) (*model.Application, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	GetApplicationByTeacherAndPost(ctx context.Context, teacherID, postID bson.ObjectID) (*model.Application, error)
	MarkWithdrawalRequested(ctx context.Context, id bson.ObjectID, note string, at time.Time) (*model.Application, error)
	TransitionStatus(ctx context.Context, id bson.ObjectID, from, to model.ApplicationStatus) (*model.Application, error)
	DeleteIfStatus(ctx context.Context, id bson.ObjectID, status model.ApplicationStatus) (*model.Application, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status model.ApplicationStatus) (*model.Application, error)
	ListApplicationsByPost(ctx context.Context, postID bson.ObjectID) ([]*model.Application, error)
	ListApplicationsByTeacher(ctx context.Context, teacherID bson.ObjectID) ([]*model.Application, error)
}

const applicationCollection = "applications"

type applicationMongoRepository struct {
	db *mongo.Database
}

func NewApplicationMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ApplicationRepository {
	collection := db.Collection(applicationCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}, {Key: "post_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "post_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create application indexes")
	}

	return &applicationMongoRepository{db: db}
}

func (r *applicationMongoRepository) CreateApplication(
	ctx context.Context,
	application *model.Application,
) (*model.Application, error) {
	now := time.Now()
	application.CreatedAt = now
	application.UpdatedAt = now
	application.AppliedAt = now
	if application.Status == "" {
		application.Status = model.ApplicationStatusPending
	}

	result, err := r.db.Collection(applicationCollection).InsertOne(ctx, application)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		application.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return application, nil
}

func (r *applicationMongoRepository) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(applicationCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) GetApplicationByTeacherAndPost(
	ctx context.Context,
	teacherID, postID bson.ObjectID,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOne(ctx, bson.M{
		"teacher_id": teacherID,
		"post_id":    postID,
	})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

// MarkWithdrawalRequested transitions pending -> withdrawal-requested.
// Returns mongo.ErrNoDocuments when the application is not pending.
func (r *applicationMongoRepository) MarkWithdrawalRequested(
	ctx context.Context,
	id bson.ObjectID,
	note string,
	at time.Time,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": model.ApplicationStatusPending},
		bson.M{"$set": bson.M{
			"status":     model.ApplicationStatusWithdrawalRequested,
			"withdrawal": model.Withdrawal{Note: note, RequestedAt: at},
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

// TransitionStatus moves the application from one status to another only if
// it is still in the expected prior status. Exactly one of any set of
// concurrent callers observes a non-error result.
func (r *applicationMongoRepository) TransitionStatus(
	ctx context.Context,
	id bson.ObjectID,
	from, to model.ApplicationStatus,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

// DeleteIfStatus removes the application only if it is still in the expected
// status, returning the deleted document. Exactly one of any set of
// concurrent callers observes a non-error result.
func (r *applicationMongoRepository) DeleteIfStatus(
	ctx context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOneAndDelete(
		ctx,
		bson.M{"_id": id, "status": status},
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) SetStatus(
	ctx context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	result := r.db.Collection(applicationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var application model.Application
	if err := result.Decode(&application); err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationMongoRepository) ListApplicationsByPost(
	ctx context.Context,
	postID bson.ObjectID,
) ([]*model.Application, error) {
	return r.list(ctx, bson.M{"post_id": postID})
}

func (r *applicationMongoRepository) ListApplicationsByTeacher(
	ctx context.Context,
	teacherID bson.ObjectID,
) ([]*model.Application, error) {
	return r.list(ctx, bson.M{"teacher_id": teacherID})
}

func (r *applicationMongoRepository) list(ctx context.Context, filter bson.M) ([]*model.Application, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}})

	cursor, err := r.db.Collection(applicationCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*model.Application
	for cursor.Next(ctx) {
		var application model.Application
		if err := cursor.Decode(&application); err != nil {
			return nil, err
		}
		applications = append(applications, &application)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}
