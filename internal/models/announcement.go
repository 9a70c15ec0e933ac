package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is an admin notice shown to every member
type Announcement struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	Body     string             `json:"body" bson:"body"`
	PostedAt time.Time          `json:"postedAt" bson:"postedAt"`
}
