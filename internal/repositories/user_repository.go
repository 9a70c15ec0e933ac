package repositories

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations. CreateUser reports an
// already registered email as an apperr.KindDuplicate error.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.InsertAck, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, email, role string) (*models.UpdateAck, error)
	SetMembership(ctx context.Context, email, membership string) (*models.UpdateAck, error)
	CountUsers(ctx context.Context) (int64, error)
}

// applyUserDefaults fills role and membership for a new account
func applyUserDefaults(user *models.User) {
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.Membership == "" {
		user.Membership = models.MembershipFree
	}
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository. It depends on the unique email
// index created by store.EnsureIndexes.
func NewMongoUserRepository(s *store.Store) *MongoUserRepository {
	return &MongoUserRepository{collection: s.Users}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.InsertAck, error) {
	applyUserDefaults(user)
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("user already exists", err)
		}
		return nil, err
	}
	return insertAck(res), nil
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.collection, bson.M{})
}

func (r *MongoUserRepository) SetRole(ctx context.Context, email, role string) (*models.UpdateAck, error) {
	return r.setField(ctx, email, "role", role)
}

func (r *MongoUserRepository) SetMembership(ctx context.Context, email, membership string) (*models.UpdateAck, error) {
	return r.setField(ctx, email, "membership", membership)
}

func (r *MongoUserRepository) setField(ctx context.Context, email, field, value string) (*models.UpdateAck, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return nil, err
	}
	return updateAck(res), nil
}

func (r *MongoUserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}
