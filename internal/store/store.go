package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the forum database
const (
	PostsCollection         = "allPosts"
	UsersCollection         = "users"
	CommentsCollection      = "comments"
	TagsCollection          = "tags"
	AnnouncementsCollection = "announcements"
	PaymentsCollection      = "payments"
	ReportsCollection       = "reports"
)

// Store holds named handles to the forum collections. It is built once and passed to
// every repository.
type Store struct {
	Client        *mongo.Client
	Database      *mongo.Database
	Posts         *mongo.Collection
	Users         *mongo.Collection
	Comments      *mongo.Collection
	Tags          *mongo.Collection
	Announcements *mongo.Collection
	Payments      *mongo.Collection
	Reports       *mongo.Collection
}

// New creates a Store over db
func New(db *mongo.Database) *Store {
	return &Store{
		Client:        db.Client(),
		Database:      db,
		Posts:         db.Collection(PostsCollection),
		Users:         db.Collection(UsersCollection),
		Comments:      db.Collection(CommentsCollection),
		Tags:          db.Collection(TagsCollection),
		Announcements: db.Collection(AnnouncementsCollection),
		Payments:      db.Collection(PaymentsCollection),
		Reports:       db.Collection(ReportsCollection),
	}
}

// EnsureIndexes creates the indexes the repositories rely on. The unique email index is the
// only source of truth for user uniqueness.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = s.Posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_time", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "author_email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create posts indexes: %w", err)
	}

	_, err = s.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "postId", Value: 1}}})
	if err != nil {
		return fmt.Errorf("failed to create comments index: %w", err)
	}
	return nil
}

// Ping verifies the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}
