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

// PaymentRepository records payments. CreatePayment inserts the payment and then sets the
// payer's membership to gold; when the insert fails the membership is left untouched.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.PaymentResult, error)
	GetPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// MongoPaymentRepository implements PaymentRepository for MongoDB. With transactions enabled
// both writes commit together; this needs a replica set or sharded cluster.
type MongoPaymentRepository struct {
	client          *mongo.Client
	payments        *mongo.Collection
	users           *mongo.Collection
	useTransactions bool
}

func NewMongoPaymentRepository(s *store.Store, useTransactions bool) *MongoPaymentRepository {
	return &MongoPaymentRepository{
		client:          s.Client,
		payments:        s.Payments,
		users:           s.Users,
		useTransactions: useTransactions,
	}
}

func (r *MongoPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.PaymentResult, error) {
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now().UTC()
	}
	if !r.useTransactions {
		return r.recordPayment(ctx, payment)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return r.recordPayment(sessCtx, payment)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.PaymentResult), nil
}

func (r *MongoPaymentRepository) recordPayment(ctx context.Context, payment *models.Payment) (*models.PaymentResult, error) {
	inserted, err := r.payments.InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}

	updated, err := r.users.UpdateOne(ctx,
		bson.M{"email": payment.Email},
		bson.M{"$set": bson.M{"membership": models.MembershipGold}},
	)
	if err != nil {
		return nil, apperr.Upstream("failed to update membership", err)
	}

	return &models.PaymentResult{
		PaymentResult:    insertAck(inserted),
		MembershipResult: updateAck(updated),
	}, nil
}

// GetPaymentsByEmail returns a user's payment history, newest first
func (r *MongoPaymentRepository) GetPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return findAll[models.Payment](ctx, r.payments, bson.M{"email": email}, findOptions)
}
