package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/model"
)

// AdAnalyticsRepository defines the interface for per-day ad counters.
type AdAnalyticsRepository interface {
	IncrementDaily(ctx context.Context, adID bson.ObjectID, day string, kind string) error
	ListByAd(ctx context.Context, adID bson.ObjectID) ([]*model.AdAnalytics, error)
}

const adAnalyticsCollection = "ad_analytics"

type adAnalyticsMongoRepository struct {
	db *mongo.Database
}

func NewAdAnalyticsMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) AdAnalyticsRepository {
	collection := db.Collection(adAnalyticsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ad_id", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create ad analytics indexes")
	}

	return &adAnalyticsMongoRepository{db: db}
}

// IncrementDaily upserts the (ad, day) document and bumps one counter.
func (r *adAnalyticsMongoRepository) IncrementDaily(
	ctx context.Context,
	adID bson.ObjectID,
	day string,
	kind string,
) error {
	var field string
	switch kind {
	case "impression":
		field = "impressions"
	case "click":
		field = "clicks"
	default:
		return fmt.Errorf("unknown counter kind %q", kind)
	}

	_, err := r.db.Collection(adAnalyticsCollection).UpdateOne(
		ctx,
		bson.M{"ad_id": adID, "day": day},
		bson.M{
			"$inc": bson.M{field: 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *adAnalyticsMongoRepository) ListByAd(
	ctx context.Context,
	adID bson.ObjectID,
) ([]*model.AdAnalytics, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "day", Value: -1}})

	cursor, err := r.db.Collection(adAnalyticsCollection).Find(ctx, bson.M{"ad_id": adID}, findOptions)
	if err != nil {
		return nil, err
	}

	var records []*model.AdAnalytics
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
