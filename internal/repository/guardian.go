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

// GuardianRepository defines the interface for guardian profile operations.
type GuardianRepository interface {
	CreateGuardian(ctx context.Context, guardian *model.Guardian) (*model.Guardian, error)
	GetGuardian(ctx context.Context, id string) (*model.Guardian, error)
	GetGuardianByGuardianID(ctx context.Context, guardianID string) (*model.Guardian, error)
	GetGuardianByUserID(ctx context.Context, userID string) (*model.Guardian, error)
	UpdateGuardian(ctx context.Context, id string, params UpdateGuardianParams) (*model.Guardian, error)
	DeleteGuardian(ctx context.Context, id string) (*model.Guardian, error)
	ListGuardians(ctx context.Context, page PageParams) ([]*model.Guardian, int64, error)
}

// UpdateGuardianParams defines the optional parameters for updating a guardian.
type UpdateGuardianParams struct {
	Name     *string
	Phone    *string
	Location *string
}

const guardianCollection = "guardians"

var guardianSearchFields = []string{"guardian_id", "name", "email", "location", "phone"}

type guardianMongoRepository struct {
	db *mongo.Database
}

func NewGuardianMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) GuardianRepository {
	collection := db.Collection(guardianCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "guardian_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create guardian indexes")
	}

	return &guardianMongoRepository{db: db}
}

func (r *guardianMongoRepository) CreateGuardian(ctx context.Context, guardian *model.Guardian) (*model.Guardian, error) {
	now := time.Now()
	guardian.CreatedAt = now
	guardian.UpdatedAt = now

	result, err := r.db.Collection(guardianCollection).InsertOne(ctx, guardian)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		guardian.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return guardian, nil
}

func (r *guardianMongoRepository) GetGuardian(ctx context.Context, id string) (*model.Guardian, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *guardianMongoRepository) GetGuardianByGuardianID(ctx context.Context, guardianID string) (*model.Guardian, error) {
	return r.findOne(ctx, bson.M{"guardian_id": guardianID})
}

func (r *guardianMongoRepository) GetGuardianByUserID(ctx context.Context, userID string) (*model.Guardian, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *guardianMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Guardian, error) {
	result := r.db.Collection(guardianCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var guardian model.Guardian
	if err := result.Decode(&guardian); err != nil {
		return nil, err
	}

	return &guardian, nil
}

func (r *guardianMongoRepository) UpdateGuardian(
	ctx context.Context,
	id string,
	params UpdateGuardianParams,
) (*model.Guardian, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Phone != nil {
		updateMap["phone"] = *params.Phone
	}
	if params.Location != nil {
		updateMap["location"] = *params.Location
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no guardian fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(guardianCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var guardian model.Guardian
	if err := result.Decode(&guardian); err != nil {
		return nil, err
	}

	return &guardian, nil
}

func (r *guardianMongoRepository) DeleteGuardian(ctx context.Context, id string) (*model.Guardian, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(guardianCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var guardian model.Guardian
	if err := result.Decode(&guardian); err != nil {
		return nil, err
	}

	return &guardian, nil
}

func (r *guardianMongoRepository) ListGuardians(
	ctx context.Context,
	page PageParams,
) ([]*model.Guardian, int64, error) {
	return listPage[model.Guardian](ctx, r.db.Collection(guardianCollection), page, guardianSearchFields)
}
