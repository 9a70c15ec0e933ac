package repositories

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid id format", err)
	}
	return objID, nil
}

func insertAck(res *mongo.InsertOneResult) *models.InsertAck {
	return &models.InsertAck{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateAck(res *mongo.UpdateResult) *models.UpdateAck {
	return &models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteAck(res *mongo.DeleteResult) *models.DeleteAck {
	return &models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}

// findAll decodes every document matching filter into a non-nil slice
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
