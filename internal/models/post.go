package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a forum post stored in the allPosts collection
type Post struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	AuthorEmail string             `json:"author_email" bson:"author_email"`
	AuthorName  string             `json:"author_name,omitempty" bson:"author_name,omitempty"`
	AuthorImage string             `json:"author_image,omitempty" bson:"author_image,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Body        string             `json:"body" bson:"body"`
	Tags        []string           `json:"tags" bson:"tags"`
	Upvote      int                `json:"upvote" bson:"upvote"`
	Downvote    int                `json:"downvote" bson:"downvote"`
	PostedTime  time.Time          `json:"posted_time" bson:"posted_time"`
}

// CreatePostRequest is the body of POST /posts. Vote counters and posted_time are set by the server.
type CreatePostRequest struct {
	AuthorEmail string   `json:"author_email"`
	AuthorName  string   `json:"author_name,omitempty"`
	AuthorImage string   `json:"author_image,omitempty"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
}

// PostPage is the envelope returned by the post listing routes
type PostPage struct {
	TotalPosts  int64  `json:"totalPosts"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int64  `json:"currentPage"`
	Posts       []Post `json:"posts"`
}

// VoteField names a post counter that can be incremented or decremented.
type VoteField string

const (
	VoteFieldUp   VoteField = "upvote"
	VoteFieldDown VoteField = "downvote"
)
