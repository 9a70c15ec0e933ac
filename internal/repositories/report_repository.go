package repositories

import (
	"context"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportRepository defines the interface for comment report operations
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) (*models.InsertAck, error)
	GetReports(ctx context.Context) ([]models.Report, error)
	ResolveReport(ctx context.Context, id string) (*models.UpdateAck, error)
	DeleteReport(ctx context.Context, id string) (*models.DeleteAck, error)
}

type MongoReportRepository struct {
	collection *mongo.Collection
}

func NewMongoReportRepository(s *store.Store) *MongoReportRepository {
	return &MongoReportRepository{collection: s.Reports}
}

// CreateReport stores an unresolved report
func (r *MongoReportRepository) CreateReport(ctx context.Context, report *models.Report) (*models.InsertAck, error) {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now().UTC()
	}
	report.Resolved = false
	res, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}
	return insertAck(res), nil
}

// GetReports returns every report, most recent first
func (r *MongoReportRepository) GetReports(ctx context.Context) ([]models.Report, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}})
	return findAll[models.Report](ctx, r.collection, bson.M{}, findOptions)
}

// ResolveReport marks a report resolved. There is no way back to unresolved.
func (r *MongoReportRepository) ResolveReport(ctx context.Context, id string) (*models.UpdateAck, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"resolved": true}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, apperr.NotFound("report not found")
	}
	return updateAck(res), nil
}

func (r *MongoReportRepository) DeleteReport(ctx context.Context, id string) (*models.DeleteAck, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, apperr.NotFound("report not found")
	}
	return deleteAck(res), nil
}
