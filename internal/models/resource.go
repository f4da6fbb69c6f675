package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is supplementary course material (typically a PDF) hosted on the
// media service.
type Resource struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID   primitive.ObjectID `json:"course_id" bson:"course_id"`
	Title      string             `json:"title" bson:"title"`
	FileURL    string             `json:"file_url" bson:"file_url"`
	UploadedBy primitive.ObjectID `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
