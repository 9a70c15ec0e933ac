package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"gorm.io/gorm"
)

// userRecord is the SQL row behind models.User
type userRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string
	Email      string `gorm:"uniqueIndex;not null"`
	Photo      string
	Role       string `gorm:"size:20;not null;default:member"`
	Membership string `gorm:"size:20;not null;default:free"`
	CreatedAt  time.Time
}

func (userRecord) TableName() string { return "users" }

func (u userRecord) toModel() models.User {
	return models.User{
		ID:         strconv.FormatUint(uint64(u.ID), 10),
		Name:       u.Name,
		Email:      u.Email,
		Photo:      u.Photo,
		Role:       u.Role,
		Membership: u.Membership,
	}
}

// paymentRecord is the SQL row behind models.Payment
type paymentRecord struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"index;not null"`
	Price         float64
	TransactionID string
	Timestamp     time.Time `gorm:"index"`
}

func (paymentRecord) TableName() string { return "payments" }

func (p paymentRecord) toModel() models.Payment {
	return models.Payment{
		ID:            strconv.FormatUint(uint64(p.ID), 10),
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		Timestamp:     p.Timestamp,
	}
}

// MigrateAccounts creates the users and payments tables
func MigrateAccounts(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &paymentRecord{})
}

// isDuplicateKey recognises unique violations from drivers that do not translate them
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// GormUserRepository implements UserRepository on a SQL database
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.InsertAck, error) {
	applyUserDefaults(user)
	rec := userRecord{
		Name:       user.Name,
		Email:      user.Email,
		Photo:      user.Photo,
		Role:       user.Role,
		Membership: user.Membership,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Duplicate("user already exists", err)
		}
		return nil, err
	}
	user.ID = strconv.FormatUint(uint64(rec.ID), 10)
	return &models.InsertAck{Acknowledged: true, InsertedID: user.ID}, nil
}

func (r *GormUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	user := rec.toModel()
	return &user, nil
}

func (r *GormUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toModel())
	}
	return users, nil
}

func (r *GormUserRepository) SetRole(ctx context.Context, email, role string) (*models.UpdateAck, error) {
	return setUserColumn(r.db.WithContext(ctx), email, "role", role)
}

func (r *GormUserRepository) SetMembership(ctx context.Context, email, membership string) (*models.UpdateAck, error) {
	return setUserColumn(r.db.WithContext(ctx), email, "membership", membership)
}

func (r *GormUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error
	return count, err
}

func setUserColumn(db *gorm.DB, email, column, value string) (*models.UpdateAck, error) {
	res := db.Model(&userRecord{}).Where("email = ?", email).Update(column, value)
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}, nil
}

// GormPaymentRepository implements PaymentRepository on a SQL database. The payment insert
// and the membership update share one transaction.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.PaymentResult, error) {
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now().UTC()
	}
	rec := paymentRecord{
		Email:         payment.Email,
		Price:         payment.Price,
		TransactionID: payment.TransactionID,
		Timestamp:     payment.Timestamp,
	}

	var result models.PaymentResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		payment.ID = strconv.FormatUint(uint64(rec.ID), 10)
		result.PaymentResult = &models.InsertAck{Acknowledged: true, InsertedID: payment.ID}

		ack, err := setUserColumn(tx, payment.Email, "membership", models.MembershipGold)
		if err != nil {
			return err
		}
		result.MembershipResult = ack
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *GormPaymentRepository) GetPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	var recs []paymentRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("timestamp desc").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0, len(recs))
	for _, rec := range recs {
		payments = append(payments, rec.toModel())
	}
	return payments, nil
}
