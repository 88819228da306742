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

// AdminRepository defines the interface for admin account operations.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error
	ListAdmins(ctx context.Context, page PageParams) ([]*model.Admin, int64, error)
}

const adminCollection = "admins"

var adminSearchFields = []string{"email", "name"}

type adminMongoRepository struct {
	db *mongo.Database
}

func NewAdminMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AdminRepository {
	collection := db.Collection(adminCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin indexes")
	}

	return &adminMongoRepository{db: db}
}

func (r *adminMongoRepository) CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	result, err := r.db.Collection(adminCollection).InsertOne(ctx, admin)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		admin.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return admin, nil
}

func (r *adminMongoRepository) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(adminCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	result := r.db.Collection(adminCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error {
	_, err := r.db.Collection(adminCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login": at, "updated_at": time.Now()}},
	)
	return err
}

func (r *adminMongoRepository) ListAdmins(ctx context.Context, page PageParams) ([]*model.Admin, int64, error) {
	return listPage[model.Admin](ctx, r.db.Collection(adminCollection), page, adminSearchFields)
}
