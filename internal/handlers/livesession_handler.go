package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/descmd1/lms-backend/internal/middleware"
	"github.com/descmd1/lms-backend/internal/services/livesession"
)

// LiveSessionHandler exposes the live-session lifecycle over HTTP. All
// domain rules live in the service; the handler only decodes, authorizes the
// actor from the request context, and maps errors to statuses.
type LiveSessionHandler struct {
	service livesession.Service
}

func NewLiveSessionHandler(service livesession.Service) *LiveSessionHandler {
	return &LiveSessionHandler{service: service}
}

func actorFromRequest(r *http.Request) (livesession.Actor, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return livesession.Actor{}, false
	}
	return livesession.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}, true
}

type createSessionRequest struct {
	CourseID          string    `json:"course_id" validate:"required"`
	Title             string    `json:"title" validate:"required"`
	Description       string    `json:"description"`
	ScheduledDateTime time.Time `json:"scheduled_date_time" validate:"required"`
	Duration          int       `json:"duration" validate:"gte=0"`
	MaxParticipants   int       `json:"max_participants" validate:"gte=0"`
}

func (h *LiveSessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.CreateSession(r.Context(), &livesession.CreateSessionInput{
		Actor:             actor,
		CourseID:          req.CourseID,
		Title:             req.Title,
		Description:       req.Description,
		ScheduledDateTime: req.ScheduledDateTime,
		Duration:          req.Duration,
		MaxParticipants:   req.MaxParticipants,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *LiveSessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session, err := h.service.GetSession(r.Context(), actor, mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":           session,
		"participant_count": session.ActiveParticipantCount(),
	})
}

func (h *LiveSessionHandler) ListCourseSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListCourseSessions(r.Context(), mux.Vars(r)["courseId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *LiveSessionHandler) ListTutorSessions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessions, err := h.service.ListTutorSessions(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *LiveSessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session, err := h.service.StartSession(r.Context(), actor, mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session started successfully",
		"session": session,
	})
}

func (h *LiveSessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		RecordingURL string `json:"recording_url"`
	}
	if r.Body != nil {
		// The body is optional; decode errors on an empty body are ignored.
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := h.service.EndSession(r.Context(), actor, mux.Vars(r)["sessionId"], req.RecordingURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session ended successfully",
		"session": session,
	})
}

type updateSessionRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	ScheduledDateTime *time.Time `json:"scheduled_date_time"`
	Duration          *int       `json:"duration" validate:"omitempty,gt=0"`
	MaxParticipants   *int       `json:"max_participants" validate:"omitempty,gt=0"`
}

func (h *LiveSessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.UpdateSession(r.Context(), &livesession.UpdateSessionInput{
		Actor:             actor,
		SessionID:         mux.Vars(r)["sessionId"],
		Title:             req.Title,
		Description:       req.Description,
		ScheduledDateTime: req.ScheduledDateTime,
		Duration:          req.Duration,
		MaxParticipants:   req.MaxParticipants,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *LiveSessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteSession(r.Context(), actor, mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session deleted successfully"})
}

func (h *LiveSessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	out, err := h.service.JoinSession(r.Context(), actor, mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":           "Joined session successfully",
		"room_id":           out.RoomID,
		"participant_count": out.ParticipantCount,
	})
}

func (h *LiveSessionHandler) LeaveSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.LeaveSession(r.Context(), actor, mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Left session successfully"})
}

type postMessageRequest struct {
	Text      string     `json:"text" validate:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

func (h *LiveSessionHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.service.PostMessage(r.Context(), &livesession.PostMessageInput{
		Actor:     actor,
		SessionID: mux.Vars(r)["sessionId"],
		Text:      req.Text,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Message sent successfully",
		"chat_message": msg,
	})
}

func (h *LiveSessionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.service.ListMessages(r.Context(), actor, mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}
