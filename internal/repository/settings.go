package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/model"
)

// SettingsRepository reads and writes the singleton settings document
// wholesale; there is no partial merge.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	PutSettings(ctx context.Context, value any) (*model.Settings, error)
}

const settingsCollection = "settings"

type settingsMongoRepository struct {
	db *mongo.Database
}

func NewSettingsMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) SettingsRepository {
	collection := db.Collection(settingsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create settings indexes")
	}

	return &settingsMongoRepository{db: db}
}

func (r *settingsMongoRepository) GetSettings(ctx context.Context) (*model.Settings, error) {
	result := r.db.Collection(settingsCollection).FindOne(ctx, bson.M{"key": model.SettingsKey})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var settings model.Settings
	if err := result.Decode(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *settingsMongoRepository) PutSettings(ctx context.Context, value any) (*model.Settings, error) {
	result := r.db.Collection(settingsCollection).FindOneAndUpdate(
		ctx,
		bson.M{"key": model.SettingsKey},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var settings model.Settings
	if err := result.Decode(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
