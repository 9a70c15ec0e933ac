package repositories

import (
	"context"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/pagination"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.InsertAck, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	CountPosts(ctx context.Context, filter bson.M) (int64, error)
	ListPosts(ctx context.Context, page pagination.Page) ([]models.Post, error)
	ListPopularPosts(ctx context.Context, page pagination.Page) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, email string) ([]models.Post, error)
	IncrementVote(ctx context.Context, id string, field models.VoteField, delta int) (*models.UpdateAck, error)
	DeletePost(ctx context.Context, id string) (*models.DeleteAck, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(s *store.Store) *MongoPostRepository {
	return &MongoPostRepository{collection: s.Posts}
}

// CreatePost stores a post, stamping posted_time when the caller left it unset
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.InsertAck, error) {
	if post.PostedTime.IsZero() {
		post.PostedTime = time.Now().UTC()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	res, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}
	return insertAck(res), nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) CountPosts(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// ListPosts returns one page of posts, newest first
func (r *MongoPostRepository) ListPosts(ctx context.Context, page pagination.Page) ([]models.Post, error) {
	findOptions := options.Find().
		SetSkip(page.Skip).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: "posted_time", Value: -1}})
	return findAll[models.Post](ctx, r.collection, page.Filter, findOptions)
}

// ListPopularPosts returns one page of posts ordered by upvote minus downvote
func (r *MongoPostRepository) ListPopularPosts(ctx context.Context, page pagination.Page) ([]models.Post, error) {
	cursor, err := r.collection.Aggregate(ctx, popularPipeline(page))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// popularPipeline computes the vote difference as a transient sort key and drops it again
// before the documents leave the store.
func popularPipeline(page pagination.Page) mongo.Pipeline {
	filter := page.Filter
	if filter == nil {
		filter = bson.M{}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.M{
			"voteDifference": bson.M{"$subtract": bson.A{
				bson.M{"$ifNull": bson.A{"$upvote", 0}},
				bson.M{"$ifNull": bson.A{"$downvote", 0}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "voteDifference", Value: -1}, {Key: "posted_time", Value: -1}}}},
		{{Key: "$skip", Value: page.Skip}},
		{{Key: "$limit", Value: page.Limit}},
		{{Key: "$project", Value: bson.M{"voteDifference": 0}}},
	}
}

// ListPostsByAuthor retrieves every post written by email, newest first
func (r *MongoPostRepository) ListPostsByAuthor(ctx context.Context, email string) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "posted_time", Value: -1}})
	return findAll[models.Post](ctx, r.collection, bson.M{"author_email": email}, findOptions)
}

// IncrementVote adds delta to a vote counter. No floor is enforced.
func (r *MongoPostRepository) IncrementVote(ctx context.Context, id string, field models.VoteField, delta int) (*models.UpdateAck, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{string(field): delta}})
	if err != nil {
		return nil, err
	}
	return updateAck(res), nil
}

// DeletePost deletes a post by ID. Its comments and reports are left in place.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) (*models.DeleteAck, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, err
	}
	return deleteAck(res), nil
}
