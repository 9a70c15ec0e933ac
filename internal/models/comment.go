package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment represents a comment on a post. PostID holds the post's ObjectID as a hex string
// and is matched by string equality.
type Comment struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PostID    string             `json:"postId" bson:"postId"`
	PostTitle string             `json:"postTitle" bson:"postTitle"`
	Body      string             `json:"body" bson:"body"`
	Author    string             `json:"author" bson:"author"`
}
