package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/store"
	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Mongo    *mongo.Client
	Store    *store.Store
	Accounts *gorm.DB // nil when users and payments live in MongoDB
}

// InitDB connects to MongoDB and, when configured, to the SQL account store
func InitDB(cfg *Config) (*DB, error) {
	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := &DB{
		Mongo: mongoClient,
		Store: store.New(mongoClient.Database(cfg.MongoDatabase)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Store.EnsureIndexes(ctx); err != nil {
		db.CloseDB()
		return nil, err
	}

	if cfg.AccountsURL != "" {
		accounts, err := initAccounts(cfg.AccountsURL)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to account store: %w", err)
		}
		db.Accounts = accounts
	}
	return db, nil
}

// initMongo initializes the MongoDB connection with the stable server API
func initMongo(uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	slog.Info("Successfully connected to MongoDB!")
	return client, nil
}

// accountsDialector picks the gorm driver from the URL scheme
func accountsDialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	default:
		return nil, fmt.Errorf("unsupported ACCOUNTS_DATABASE_URL scheme, use postgres:// or sqlite://")
	}
}

func initAccounts(url string) (*gorm.DB, error) {
	dialector, err := accountsDialector(url)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	slog.Info("Successfully connected to the account store!", "driver", dialector.Name())
	return db, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Accounts != nil {
		sqlDB, err := db.Accounts.DB()
		if err != nil {
			slog.Error("Error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing account store connection", "error", err)
		} else {
			slog.Info("Account store connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			slog.Error("Error closing MongoDB connection", "error", err)
		} else {
			slog.Info("MongoDB connection closed.")
		}
	}
}
