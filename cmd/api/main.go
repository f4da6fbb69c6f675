package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/descmd1/lms-backend/internal/common/clock"
	"github.com/descmd1/lms-backend/internal/common/roomid"
	"github.com/descmd1/lms-backend/internal/config"
	"github.com/descmd1/lms-backend/internal/database"
	"github.com/descmd1/lms-backend/internal/handlers"
	"github.com/descmd1/lms-backend/internal/media"
	"github.com/descmd1/lms-backend/internal/notify"
	"github.com/descmd1/lms-backend/internal/payments"
	courseRepo "github.com/descmd1/lms-backend/internal/repositories/course"
	enrollmentRepo "github.com/descmd1/lms-backend/internal/repositories/enrollment"
	sessionRepo "github.com/descmd1/lms-backend/internal/repositories/session"
	userRepo "github.com/descmd1/lms-backend/internal/repositories/user"
	"github.com/descmd1/lms-backend/internal/routes"
	"github.com/descmd1/lms-backend/internal/services/livesession"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	db := client.Database(cfg.DatabaseName)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Media uploads
	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	// Payment gateway
	gateway := payments.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)

	// Email notifications run on their own worker
	dispatcher := notify.NewEmailDispatcher(cfg.SMTP)
	defer dispatcher.Close()

	sessions := sessionRepo.NewMongoRepository(db)
	courses := courseRepo.NewMongoRepository(db)
	enrollments := enrollmentRepo.NewMongoRepository(db)
	users := userRepo.NewMongoRepository(db)

	sessionService, err := livesession.New(&livesession.Config{
		SessionRepo:    sessions,
		CourseRepo:     courses,
		EnrollmentRepo: enrollments,
		UserRepo:       users,
		Dispatcher:     dispatcher,
		Clock:          &clock.DefaultClock{},
		RoomID:         roomid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize live session service: %v", err)
	}

	h := routes.Handlers{
		Users:        handlers.NewUserHandler(client, cfg.DatabaseName, uploader, []byte(cfg.JWTSecret)),
		Courses:      handlers.NewCourseHandler(client, cfg.DatabaseName, uploader),
		Resources:    handlers.NewResourceHandler(client, cfg.DatabaseName, uploader),
		Payments:     handlers.NewPaymentHandler(client, cfg.DatabaseName, gateway, enrollments),
		LiveSessions: handlers.NewLiveSessionHandler(sessionService),
	}

	// Initialize router
	router := routes.SetupRouter(h, []byte(cfg.JWTSecret))

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Wrap router with CORS
	handler := c.Handler(router)

	// Start server
	log.Printf("🚀 Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
