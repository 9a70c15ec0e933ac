package repositories

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) (*models.InsertAck, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	GetCommentsByPostTitle(ctx context.Context, title string) ([]models.Comment, error)
	CountComments(ctx context.Context) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(s *store.Store) *MongoCommentRepository {
	return &MongoCommentRepository{collection: s.Comments}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (*models.InsertAck, error) {
	res, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return nil, err
	}
	return insertAck(res), nil
}

// GetCommentsByPostID matches postId as a plain string, exactly as stored
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, r.collection, bson.M{"postId": postID})
}

func (r *MongoCommentRepository) GetCommentsByPostTitle(ctx context.Context, title string) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, r.collection, bson.M{"postTitle": title})
}

func (r *MongoCommentRepository) CountComments(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}
