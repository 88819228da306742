package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/model"
)

// AdRepository defines the interface for advertisement operations.
type AdRepository interface {
	CreateAd(ctx context.Context, ad *model.Ad) (*model.Ad, error)
	GetAd(ctx context.Context, id string) (*model.Ad, error)
	UpdateAd(ctx context.Context, id string, params UpdateAdParams) (*model.Ad, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status model.AdStatus) error
	IncrementCounter(ctx context.Context, id bson.ObjectID, kind string) error
	DeleteAd(ctx context.Context, id string) (*model.Ad, error)
	ListAds(ctx context.Context, page PageParams) ([]*model.Ad, int64, error)
	ListAllAds(ctx context.Context) ([]*model.Ad, error)
}

// UpdateAdParams defines the optional parameters for updating an ad.
// A date bound set to a non-nil pointer-to-nil clears that bound.
type UpdateAdParams struct {
	Name      *string
	ImageURL  *string
	TargetURL *string
	Placement *string
	StartDate **time.Time
	EndDate   **time.Time
}

const adCollection = "ads"

var adSearchFields = []string{"name", "placement"}

type adMongoRepository struct {
	db *mongo.Database
}

func NewAdMongoRepository(db *mongo.Database) AdRepository {
	return &adMongoRepository{db: db}
}

func (r *adMongoRepository) CreateAd(ctx context.Context, ad *model.Ad) (*model.Ad, error) {
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	result, err := r.db.Collection(adCollection).InsertOne(ctx, ad)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		ad.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return ad, nil
}

func (r *adMongoRepository) GetAd(ctx context.Context, id string) (*model.Ad, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(adCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var ad model.Ad
	if err := result.Decode(&ad); err != nil {
		return nil, err
	}

	return &ad, nil
}

func (r *adMongoRepository) UpdateAd(ctx context.Context, id string, params UpdateAdParams) (*model.Ad, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.ImageURL != nil {
		updateMap["image_url"] = *params.ImageURL
	}
	if params.TargetURL != nil {
		updateMap["target_url"] = *params.TargetURL
	}
	if params.Placement != nil {
		updateMap["placement"] = *params.Placement
	}
	if params.StartDate != nil {
		updateMap["start_date"] = *params.StartDate
	}
	if params.EndDate != nil {
		updateMap["end_date"] = *params.EndDate
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no ad fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(adCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var ad model.Ad
	if err := result.Decode(&ad); err != nil {
		return nil, err
	}

	return &ad, nil
}

func (r *adMongoRepository) SetStatus(ctx context.Context, id bson.ObjectID, status model.AdStatus) error {
	_, err := r.db.Collection(adCollection).UpdateOne(
		ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": status}},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

// IncrementCounter bumps the lifetime impression or click counter.
func (r *adMongoRepository) IncrementCounter(ctx context.Context, id bson.ObjectID, kind string) error {
	var field string
	switch kind {
	case "impression":
		field = "impressions"
	case "click":
		field = "clicks"
	default:
		return fmt.Errorf("unknown counter kind %q", kind)
	}

	_, err := r.db.Collection(adCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
	)
	return err
}

func (r *adMongoRepository) DeleteAd(ctx context.Context, id string) (*model.Ad, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(adCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var ad model.Ad
	if err := result.Decode(&ad); err != nil {
		return nil, err
	}

	return &ad, nil
}

func (r *adMongoRepository) ListAds(ctx context.Context, page PageParams) ([]*model.Ad, int64, error) {
	return listPage[model.Ad](ctx, r.db.Collection(adCollection), page, adSearchFields)
}

func (r *adMongoRepository) ListAllAds(ctx context.Context) ([]*model.Ad, error) {
	cursor, err := r.db.Collection(adCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var ads []*model.Ad
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, err
	}

	return ads, nil
}
