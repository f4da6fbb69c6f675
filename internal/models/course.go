package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter is one unit of course content. Video URLs point at the media host.
type Chapter struct {
	Title    string `json:"title" bson:"title"`
	VideoURL string `json:"video_url,omitempty" bson:"video_url,omitempty"`
}

type Course struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	// Author is the display name of the owning tutor. Course ownership checks
	// match this against the name carried in the auth claims.
	Author    string    `json:"author" bson:"author"`
	Price     int64     `json:"price" bson:"price"` // minor currency units
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Chapters  []Chapter `json:"chapters" bson:"chapters"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CourseVisit records one view of a course page.
type CourseVisit struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID  string             `json:"course_id" bson:"course_id"`
	UserID    string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	VisitedAt time.Time          `json:"visited_at" bson:"visited_at"`
}
