package repositories

import (
	"context"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementRepository defines the interface for announcement data operations.
// Announcements are append-only.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.InsertAck, error)
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CountAnnouncements(ctx context.Context) (int64, error)
}

type MongoAnnouncementRepository struct {
	collection *mongo.Collection
}

func NewMongoAnnouncementRepository(s *store.Store) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{collection: s.Announcements}
}

func (r *MongoAnnouncementRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.InsertAck, error) {
	if a.PostedAt.IsZero() {
		a.PostedAt = time.Now().UTC()
	}
	res, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return nil, err
	}
	return insertAck(res), nil
}

// GetAnnouncements returns all announcements, newest first
func (r *MongoAnnouncementRepository) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}})
	return findAll[models.Announcement](ctx, r.collection, bson.M{}, findOptions)
}

func (r *MongoAnnouncementRepository) CountAnnouncements(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}
