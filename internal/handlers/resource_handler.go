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

type ResourceHandler struct {
	collection *mongo.Collection
	uploader   media.Uploader
}

func NewResourceHandler(client *mongo.Client, dbName string, uploader media.Uploader) *ResourceHandler {
	return &ResourceHandler{
		collection: client.Database(dbName).Collection("resources"),
		uploader:   uploader,
	}
}

// ListByCourse returns all resources attached to a course
func (h *ResourceHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		http.Error(w, "Failed to fetch resources", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err = cursor.All(ctx, &resources); err != nil {
		http.Error(w, "Error decoding resources", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resources)
}

// Create uploads a resource file to the media host and stores its metadata
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uploadedBy, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	courseID, err := primitive.ObjectIDFromHex(r.FormValue("course_id"))
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}
	title := r.FormValue("title")
	if title == "" {
		http.Error(w, "Resource title is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Resource file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), file, "learning/resources")
	if err != nil {
		log.Printf("Error uploading resource: %v", err)
		http.Error(w, "Error uploading resource file", http.StatusInternalServerError)
		return
	}

	resource := models.Resource{
		ID:         primitive.NewObjectID(),
		CourseID:   courseID,
		Title:      title,
		FileURL:    url,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, resource); err != nil {
		http.Error(w, "Failed to save resource", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resource)
}

// Delete removes a resource uploaded by the caller
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid resource ID", http.StatusBadRequest)
		return
	}
	uploadedBy, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.collection.DeleteOne(ctx, bson.M{"_id": objID, "uploaded_by": uploadedBy})
	if err != nil {
		http.Error(w, "Failed to delete resource", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Resource not found or you don't have permission", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Resource deleted successfully"))
}
