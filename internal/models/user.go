package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleTutor   UserRole = "tutor"
	RoleStudent UserRole = "student"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Role         UserRole           `json:"role" bson:"role"`
	ProfileImage string             `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	JoinDate     time.Time          `json:"join_date" bson:"join_date"`
}
