package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/descmd1/lms-backend/internal/media"
	"github.com/descmd1/lms-backend/internal/middleware"
	"github.com/descmd1/lms-backend/internal/models"
)

type CourseHandler struct {
	collection *mongo.Collection
	visits     *mongo.Collection
	uploader   media.Uploader
}

func NewCourseHandler(client *mongo.Client, dbName string, uploader media.Uploader) *CourseHandler {
	return &CourseHandler{
		collection: client.Database(dbName).Collection("courses"),
		visits:     client.Database(dbName).Collection("course_visits"),
		uploader:   uploader,
	}
}

// GetCourses retrieves all courses
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to fetch courses", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err = cursor.All(ctx, &courses); err != nil {
		http.Error(w, "Error decoding courses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

// GetCourseByID returns a single course and records the visit
func (h *CourseHandler) GetCourseByID(w http.ResponseWriter, r *http.Request) {
	idParam := mux.Vars(r)["id"]

	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var course models.Course
	err = h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&course)
	if err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	visit := models.CourseVisit{CourseID: idParam, VisitedAt: time.Now()}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		visit.UserID = claims.UserID
	}
	if _, err := h.visits.InsertOne(ctx, visit); err != nil {
		// Visit tracking is best effort.
		log.Printf("Error recording course visit: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// CreateCourse handles creating a new course. The authenticated tutor becomes
// the author of record; an optional multipart image is pushed to the media
// host.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	newCourse := models.Course{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Author:      claims.Name,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if newCourse.Title == "" {
		http.Error(w, "Course title is required", http.StatusBadRequest)
		return
	}

	if chaptersJSON := r.FormValue("chapters"); chaptersJSON != "" {
		if err := json.Unmarshal([]byte(chaptersJSON), &newCourse.Chapters); err != nil {
			http.Error(w, "Invalid chapters payload", http.StatusBadRequest)
			return
		}
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.uploader.Upload(r.Context(), file, "learning/courseImages")
		if err != nil {
			// Continue course creation without the image.
			log.Printf("Image upload failed: %v", err)
		} else {
			newCourse.ImageURL = url
		}
	}

	newCourse.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, newCourse); err != nil {
		http.Error(w, "Failed to create course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newCourse)
}

// UpdateCourse updates course details for the owning author
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var updatedCourse models.Course
	if err := json.NewDecoder(r.Body).Decode(&updatedCourse); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	update := bson.M{
		"$set": bson.M{
			"title":       updatedCourse.Title,
			"description": updatedCourse.Description,
			"price":       updatedCourse.Price,
			"chapters":    updatedCourse.Chapters,
			"updated_at":  time.Now(),
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.collection.UpdateOne(ctx, bson.M{"_id": objID, "author": claims.Name}, update)
	if err != nil {
		http.Error(w, "Failed to update course", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Course not found or you don't have permission", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Course updated successfully"))
}

// DeleteCourse deletes a course owned by the caller
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.collection.DeleteOne(ctx, bson.M{"_id": objID, "author": claims.Name})
	if err != nil {
		http.Error(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Course not found or you don't have permission", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Course deleted successfully"))
}
