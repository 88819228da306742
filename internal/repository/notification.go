package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
)

// NotificationRepository defines the interface for the admin inbox.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.AdminNotification) (*model.AdminNotification, error)
	MarkApproved(ctx context.Context, applicationID bson.ObjectID) error
	ListNotifications(ctx context.Context, page PageParams) ([]*model.AdminNotification, int64, error)
}

const notificationCollection = "admin_notifications"

type notificationMongoRepository struct {
	db *mongo.Database
}

func NewNotificationMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) NotificationRepository {
	collection := db.Collection(notificationCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "application_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create notification indexes")
	}

	return &notificationMongoRepository{db: db}
}

func (r *notificationMongoRepository) CreateNotification(
	ctx context.Context,
	notification *model.AdminNotification,
) (*model.AdminNotification, error) {
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	if notification.Status == "" {
		notification.Status = model.NotificationStatusPending
	}

	result, err := r.db.Collection(notificationCollection).InsertOne(ctx, notification)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		notification.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return notification, nil
}

// MarkApproved is idempotent: re-approving an already approved notification
// matches zero documents and succeeds.
func (r *notificationMongoRepository) MarkApproved(ctx context.Context, applicationID bson.ObjectID) error {
	_, err := r.db.Collection(notificationCollection).UpdateOne(
		ctx,
		bson.M{"application_id": applicationID, "status": model.NotificationStatusPending},
		bson.M{"$set": bson.M{
			"status":     model.NotificationStatusApproved,
			"updated_at": time.Now(),
		}},
	)
	return err
}

func (r *notificationMongoRepository) ListNotifications(
	ctx context.Context,
	page PageParams,
) ([]*model.AdminNotification, int64, error) {
	return listPage[model.AdminNotification](ctx, r.db.Collection(notificationCollection), page, nil)
}
