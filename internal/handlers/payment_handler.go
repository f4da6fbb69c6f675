package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/descmd1/lms-backend/internal/middleware"
	"github.com/descmd1/lms-backend/internal/models"
	"github.com/descmd1/lms-backend/internal/payments"
	enrollmentRepo "github.com/descmd1/lms-backend/internal/repositories/enrollment"
)

// pendingPayment links a gateway reference to the user and course it pays
// for, so a verified reference can be turned into an enrollment.
type pendingPayment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Reference string             `bson:"reference"`
	UserID    string             `bson:"user_id"`
	CourseID  string             `bson:"course_id"`
	Amount    int64              `bson:"amount"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

type PaymentHandler struct {
	gateway     payments.Client
	payments    *mongo.Collection
	courses     *mongo.Collection
	users       *mongo.Collection
	enrollments enrollmentRepo.Repository
}

func NewPaymentHandler(client *mongo.Client, dbName string, gateway payments.Client, enrollments enrollmentRepo.Repository) *PaymentHandler {
	db := client.Database(dbName)
	return &PaymentHandler{
		gateway:     gateway,
		payments:    db.Collection("payments"),
		courses:     db.Collection("courses"),
		users:       db.Collection("users"),
		enrollments: enrollments,
	}
}

type initializePaymentRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// Initialize starts a gateway checkout for the course price and records the
// pending reference.
func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req initializePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	courseOID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}
	userOID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var course models.Course
	if err := h.courses.FindOne(ctx, bson.M{"_id": courseOID}).Decode(&course); err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	var user models.User
	if err := h.users.FindOne(ctx, bson.M{"_id": userOID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	// Reject double purchases before touching the gateway.
	if _, err := h.enrollments.Find(ctx, claims.UserID, req.CourseID); err == nil {
		http.Error(w, "You are already enrolled in this course", http.StatusConflict)
		return
	}

	checkout, err := h.gateway.Initialize(ctx, user.Email, course.Price)
	if err != nil {
		http.Error(w, "Failed to initialize payment", http.StatusBadGateway)
		return
	}

	pending := pendingPayment{
		Reference: checkout.Reference,
		UserID:    claims.UserID,
		CourseID:  req.CourseID,
		Amount:    course.Price,
		Status:    "pending",
		CreatedAt: time.Now(),
	}
	if _, err := h.payments.InsertOne(ctx, pending); err != nil {
		http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"authorization_url": checkout.AuthorizationURL,
		"access_code":       checkout.AccessCode,
		"reference":         checkout.Reference,
	})
}

// Verify settles a reference with the gateway and creates the enrollment on
// success.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reference := mux.Vars(r)["reference"]

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var pending pendingPayment
	err := h.payments.FindOne(ctx, bson.M{"reference": reference, "user_id": claims.UserID}).Decode(&pending)
	if err != nil {
		http.Error(w, "Payment reference not found", http.StatusNotFound)
		return
	}

	verification, err := h.gateway.Verify(ctx, reference)
	if err != nil {
		http.Error(w, "Failed to verify payment", http.StatusBadGateway)
		return
	}
	if !verification.Success {
		http.Error(w, "Payment was not successful", http.StatusPaymentRequired)
		return
	}

	if _, err := h.payments.UpdateOne(ctx, bson.M{"_id": pending.ID}, bson.M{"$set": bson.M{"status": "success"}}); err != nil {
		http.Error(w, "Failed to update payment", http.StatusInternalServerError)
		return
	}

	// A verified reference may be replayed; only the first creates the
	// enrollment.
	if _, err := h.enrollments.Find(ctx, pending.UserID, pending.CourseID); err == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Already enrolled"})
		return
	}

	enrollment := &models.Enrollment{
		UserID:           models.FlexID(pending.UserID),
		CourseID:         models.FlexID(pending.CourseID),
		DateEnrolled:     time.Now(),
		PaymentReference: reference,
	}
	if err := h.enrollments.Create(ctx, enrollment); err != nil {
		http.Error(w, "Failed to create enrollment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Enrollment created successfully",
		"enrollment": enrollment,
	})
}
