package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// listPage runs the shared list query: search filter over the collection's
// allow-listed fields, newest-created first, skip/limit from the page params,
// and a total count over the filtered set (not the page).
func listPage[T any](
	ctx context.Context,
	collection *mongo.Collection,
	page PageParams,
	searchFields []string,
) ([]*T, int64, error) {
	filter := searchFilter(page.Search, searchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, 0, err
		}
		items = append(items, &item)
	}

	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
