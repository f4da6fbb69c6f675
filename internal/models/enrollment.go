package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment asserts that a user has purchased a course. Historical documents
// stored user_id and course_id as either ObjectIDs or hex strings, so both
// fields decode through FlexID.
type Enrollment struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           FlexID             `json:"user_id" bson:"user_id"`
	CourseID         FlexID             `json:"course_id" bson:"course_id"`
	DateEnrolled     time.Time          `json:"date_enrolled" bson:"date_enrolled"`
	PaymentReference string             `json:"payment_reference" bson:"payment_reference"`
}
