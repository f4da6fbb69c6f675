package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/descmd1/lms-backend/internal/auth"
	"github.com/descmd1/lms-backend/internal/handlers"
	"github.com/descmd1/lms-backend/internal/models"
	"github.com/descmd1/lms-backend/internal/services/livesession"
	serviceMocks "github.com/descmd1/lms-backend/internal/services/livesession/mocks"
)

var testSecret = []byte("test-secret")

type LiveSessionRoutesTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *serviceMocks.MockService
	router      http.Handler

	tutorID      primitive.ObjectID
	studentID    primitive.ObjectID
	sessionID    primitive.ObjectID
	tutorToken   string
	studentToken string
}

func (s *LiveSessionRoutesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = serviceMocks.NewMockService(s.mockCtrl)

	s.router = SetupRouter(Handlers{
		LiveSessions: handlers.NewLiveSessionHandler(s.mockService),
	}, testSecret)

	s.tutorID = primitive.NewObjectID()
	s.studentID = primitive.NewObjectID()
	s.sessionID = primitive.NewObjectID()

	var err error
	s.tutorToken, err = auth.GenerateJWT(testSecret, s.tutorID.Hex(), "Ada Obi", models.RoleTutor)
	s.Require().NoError(err)
	s.studentToken, err = auth.GenerateJWT(testSecret, s.studentID.Hex(), "Ben Eze", models.RoleStudent)
	s.Require().NoError(err)
}

func (s *LiveSessionRoutesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LiveSessionRoutesTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *LiveSessionRoutesTestSuite) TestHealth() {
	rec := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestMissingTokenIsRejected() {
	rec := s.request(http.MethodGet, "/api/live-sessions/"+s.sessionID.Hex(), "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestCreateSession_TutorAllowed() {
	scheduled := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	s.mockService.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *livesession.CreateSessionInput) (*models.LiveSession, error) {
			s.Equal(s.tutorID.Hex(), input.Actor.ID)
			s.Equal("Week 1 Live Class", input.Title)
			return &models.LiveSession{
				ID:     s.sessionID,
				Title:  input.Title,
				Status: models.SessionScheduled,
				RoomID: "room_ab12cd34e_1749567600000",
			}, nil
		})

	rec := s.request(http.MethodPost, "/api/live-sessions", s.tutorToken, map[string]interface{}{
		"course_id":           primitive.NewObjectID().Hex(),
		"title":               "Week 1 Live Class",
		"scheduled_date_time": scheduled,
	})

	s.Equal(http.StatusCreated, rec.Code)

	var session models.LiveSession
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &session))
	s.Equal(models.SessionScheduled, session.Status)
}

func (s *LiveSessionRoutesTestSuite) TestCreateSession_StudentForbidden() {
	rec := s.request(http.MethodPost, "/api/live-sessions", s.studentToken, map[string]interface{}{
		"course_id":           primitive.NewObjectID().Hex(),
		"title":               "Week 1 Live Class",
		"scheduled_date_time": time.Now().Add(24 * time.Hour),
	})

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestCreateSession_MissingTitle() {
	rec := s.request(http.MethodPost, "/api/live-sessions", s.tutorToken, map[string]interface{}{
		"course_id":           primitive.NewObjectID().Hex(),
		"scheduled_date_time": time.Now().Add(24 * time.Hour),
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestTutorListingIsNotReadAsSessionID() {
	s.mockService.EXPECT().
		ListTutorSessions(gomock.Any(), gomock.Any()).
		Return([]models.LiveSession{}, nil)

	rec := s.request(http.MethodGet, "/api/live-sessions/tutor", s.tutorToken, nil)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestTutorListing_StudentForbidden() {
	rec := s.request(http.MethodGet, "/api/live-sessions/tutor", s.studentToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestGetSession_IncludesParticipantCount() {
	leftAt := time.Now()
	session := &models.LiveSession{
		ID:     s.sessionID,
		Status: models.SessionLive,
		Participants: []models.Participant{
			{UserID: primitive.NewObjectID(), JoinedAt: time.Now()},
			{UserID: primitive.NewObjectID(), JoinedAt: time.Now(), LeftAt: &leftAt},
		},
	}

	s.mockService.EXPECT().
		GetSession(gomock.Any(), gomock.Any(), s.sessionID.Hex()).
		Return(session, nil)

	rec := s.request(http.MethodGet, "/api/live-sessions/"+s.sessionID.Hex(), s.studentToken, nil)

	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		ParticipantCount int `json:"participant_count"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(1, body.ParticipantCount)
}

func (s *LiveSessionRoutesTestSuite) TestJoinSession_HappyPath() {
	s.mockService.EXPECT().
		JoinSession(gomock.Any(), gomock.Any(), s.sessionID.Hex()).
		Return(&livesession.JoinSessionOutput{
			RoomID:           "room_ab12cd34e_1749567600000",
			ParticipantCount: 3,
		}, nil)

	rec := s.request(http.MethodPost, "/api/live-sessions/"+s.sessionID.Hex()+"/join", s.studentToken, nil)

	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		RoomID           string `json:"room_id"`
		ParticipantCount int    `json:"participant_count"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("room_ab12cd34e_1749567600000", body.RoomID)
	s.Equal(3, body.ParticipantCount)
}

func (s *LiveSessionRoutesTestSuite) TestJoinSession_ErrorMapping() {
	cases := []struct {
		err  error
		code int
	}{
		{livesession.ErrSessionNotFound, http.StatusNotFound},
		{livesession.ErrNotEnrolled, http.StatusForbidden},
		{livesession.ErrSessionNotLive, http.StatusConflict},
		{livesession.ErrAtCapacity, http.StatusConflict},
	}

	for _, tc := range cases {
		s.mockService.EXPECT().
			JoinSession(gomock.Any(), gomock.Any(), s.sessionID.Hex()).
			Return(nil, tc.err)

		rec := s.request(http.MethodPost, "/api/live-sessions/"+s.sessionID.Hex()+"/join", s.studentToken, nil)
		s.Equal(tc.code, rec.Code, "error %q", tc.err)
	}
}

func (s *LiveSessionRoutesTestSuite) TestStartSession_StudentForbidden() {
	rec := s.request(http.MethodPut, "/api/live-sessions/"+s.sessionID.Hex()+"/start", s.studentToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestEndSession_PassesRecordingURL() {
	s.mockService.EXPECT().
		EndSession(gomock.Any(), gomock.Any(), s.sessionID.Hex(), "https://cdn.example.com/rec.mp4").
		Return(&models.LiveSession{ID: s.sessionID, Status: models.SessionCompleted}, nil)

	rec := s.request(http.MethodPut, "/api/live-sessions/"+s.sessionID.Hex()+"/end", s.tutorToken, map[string]string{
		"recording_url": "https://cdn.example.com/rec.mp4",
	})

	s.Equal(http.StatusOK, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestPostMessage_HappyPath() {
	s.mockService.EXPECT().
		PostMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *livesession.PostMessageInput) (*models.ChatMessage, error) {
			s.Equal("hello", input.Text)
			s.Equal(s.sessionID.Hex(), input.SessionID)
			return &models.ChatMessage{Text: input.Text, UserName: "Ben Eze"}, nil
		})

	rec := s.request(http.MethodPost, "/api/live-sessions/"+s.sessionID.Hex()+"/messages", s.studentToken, map[string]string{
		"text": "hello",
	})

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestPostMessage_EmptyTextRejected() {
	rec := s.request(http.MethodPost, "/api/live-sessions/"+s.sessionID.Hex()+"/messages", s.studentToken, map[string]string{
		"text": "",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LiveSessionRoutesTestSuite) TestListMessages_ReturnsCount() {
	s.mockService.EXPECT().
		ListMessages(gomock.Any(), gomock.Any(), s.sessionID.Hex()).
		Return([]models.ChatMessage{{Text: "one"}, {Text: "two"}}, nil)

	rec := s.request(http.MethodGet, "/api/live-sessions/"+s.sessionID.Hex()+"/messages", s.studentToken, nil)

	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(2, body.Count)
}

func (s *LiveSessionRoutesTestSuite) TestDeleteSession_WhileLiveConflicts() {
	s.mockService.EXPECT().
		DeleteSession(gomock.Any(), gomock.Any(), s.sessionID.Hex()).
		Return(livesession.ErrSessionIsLive)

	rec := s.request(http.MethodDelete, "/api/live-sessions/"+s.sessionID.Hex(), s.tutorToken, nil)

	s.Equal(http.StatusConflict, rec.Code)
}

func TestLiveSessionRoutesSuite(t *testing.T) {
	suite.Run(t, new(LiveSessionRoutesTestSuite))
}
