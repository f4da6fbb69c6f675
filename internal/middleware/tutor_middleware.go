package middleware

import (
	"net/http"

	"github.com/descmd1/lms-backend/internal/models"
)

// TutorOnly rejects requests from authenticated users who are not tutors.
// It must run after AuthMiddleware.
func TutorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != models.RoleTutor {
			http.Error(w, "Access denied. Tutors only.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
