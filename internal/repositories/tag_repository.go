package repositories

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TagRepository defines the interface for tag data operations. Labels are not unique.
type TagRepository interface {
	CreateTag(ctx context.Context, tag *models.Tag) (*models.InsertAck, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
}

type MongoTagRepository struct {
	collection *mongo.Collection
}

func NewMongoTagRepository(s *store.Store) *MongoTagRepository {
	return &MongoTagRepository{collection: s.Tags}
}

func (r *MongoTagRepository) CreateTag(ctx context.Context, tag *models.Tag) (*models.InsertAck, error) {
	res, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		return nil, err
	}
	return insertAck(res), nil
}

func (r *MongoTagRepository) GetTags(ctx context.Context) ([]models.Tag, error) {
	return findAll[models.Tag](ctx, r.collection, bson.M{})
}
