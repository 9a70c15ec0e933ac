package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report flags a comment for admin review. Resolved only ever moves from false to true.
type Report struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommentID  string             `json:"commentId" bson:"commentId"`
	Comment    string             `json:"comment" bson:"comment"` // body snapshot at report time
	ReportedBy string             `json:"reportedBy" bson:"reportedBy"`
	Reason     string             `json:"reason" bson:"reason"`
	ReportedAt time.Time          `json:"reportedAt" bson:"reportedAt"`
	Resolved   bool               `json:"resolved" bson:"resolved"`
}

// CreateReportRequest is the body of POST /reports; reporter and time come from the server
type CreateReportRequest struct {
	CommentID string `json:"commentId" validate:"required"`
	Comment   string `json:"comment"`
	Reason    string `json:"reason"`
}
