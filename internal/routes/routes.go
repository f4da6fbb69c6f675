package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/descmd1/lms-backend/internal/handlers"
	"github.com/descmd1/lms-backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Users        *handlers.UserHandler
	Courses      *handlers.CourseHandler
	Resources    *handlers.ResourceHandler
	Payments     *handlers.PaymentHandler
	LiveSessions *handlers.LiveSessionHandler
}

func SetupRouter(h Handlers, jwtSecret []byte) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	// Public routes
	router.HandleFunc("/api/users/signup", h.Users.Signup).Methods("POST")
	router.HandleFunc("/api/users/signin", h.Users.Signin).Methods("POST")

	// Everything below requires a valid bearer token.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(jwtSecret))

	api.HandleFunc("/users", h.Users.GetUsers).Methods("GET")
	api.HandleFunc("/users/{id}", h.Users.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", h.Users.UpdateUser).Methods("PUT")

	api.HandleFunc("/courses", h.Courses.GetCourses).Methods("GET")
	api.HandleFunc("/courses/{id}", h.Courses.GetCourseByID).Methods("GET")
	api.HandleFunc("/courses/{id}/resources", h.Resources.ListByCourse).Methods("GET")

	api.HandleFunc("/payments/initialize", h.Payments.Initialize).Methods("POST")
	api.HandleFunc("/payments/verify/{reference}", h.Payments.Verify).Methods("GET")

	api.HandleFunc("/live-sessions/course/{courseId}", h.LiveSessions.ListCourseSessions).Methods("GET")
	// Registered before the {sessionId} routes so "tutor" is not read as an id.
	api.Handle("/live-sessions/tutor", middleware.TutorOnly(http.HandlerFunc(h.LiveSessions.ListTutorSessions))).Methods("GET")
	api.HandleFunc("/live-sessions/{sessionId}", h.LiveSessions.GetSession).Methods("GET")
	api.HandleFunc("/live-sessions/{sessionId}/join", h.LiveSessions.JoinSession).Methods("POST")
	api.HandleFunc("/live-sessions/{sessionId}/leave", h.LiveSessions.LeaveSession).Methods("POST")
	api.HandleFunc("/live-sessions/{sessionId}/messages", h.LiveSessions.PostMessage).Methods("POST")
	api.HandleFunc("/live-sessions/{sessionId}/messages", h.LiveSessions.ListMessages).Methods("GET")

	// Tutor-only surface
	tutor := api.NewRoute().Subrouter()
	tutor.Use(middleware.TutorOnly)

	tutor.HandleFunc("/courses", h.Courses.CreateCourse).Methods("POST")
	tutor.HandleFunc("/courses/{id}", h.Courses.UpdateCourse).Methods("PUT")
	tutor.HandleFunc("/courses/{id}", h.Courses.DeleteCourse).Methods("DELETE")

	tutor.HandleFunc("/resources", h.Resources.Create).Methods("POST")
	tutor.HandleFunc("/resources/{id}", h.Resources.Delete).Methods("DELETE")

	tutor.HandleFunc("/live-sessions", h.LiveSessions.CreateSession).Methods("POST")
	tutor.HandleFunc("/live-sessions/{sessionId}", h.LiveSessions.UpdateSession).Methods("PUT")
	tutor.HandleFunc("/live-sessions/{sessionId}", h.LiveSessions.DeleteSession).Methods("DELETE")
	tutor.HandleFunc("/live-sessions/{sessionId}/start", h.LiveSessions.StartSession).Methods("PUT")
	tutor.HandleFunc("/live-sessions/{sessionId}/end", h.LiveSessions.EndSession).Methods("PUT")

	return router
}
