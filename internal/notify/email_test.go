package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/descmd1/lms-backend/internal/models"
)

func testNotification(role models.UserRole, rescheduled bool) Notification {
	return Notification{
		Email: "ada@example.com",
		Name:  "Ada Obi",
		Role:  role,
		Session: SessionDetails{
			Title:             "Week 1 Live Class",
			Description:       "Kickoff session",
			ScheduledDateTime: time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC),
			Duration:          60,
			MaxParticipants:   100,
			CourseTitle:       "Intro to Go",
			IsRescheduled:     rescheduled,
		},
	}
}

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "Live Session Scheduled: Week 1 Live Class",
		buildSubject(testNotification(models.RoleTutor, false)))

	assert.Equal(t, "New Live Session Available: Week 1 Live Class",
		buildSubject(testNotification(models.RoleStudent, false)))

	assert.Equal(t, "Live Session Rescheduled: Week 1 Live Class",
		buildSubject(testNotification(models.RoleStudent, true)))
	assert.Equal(t, "Live Session Rescheduled: Week 1 Live Class",
		buildSubject(testNotification(models.RoleTutor, true)))
}

func TestBuildBody(t *testing.T) {
	body := buildBody(testNotification(models.RoleStudent, false))

	assert.Contains(t, body, "Hi Ada Obi,")
	assert.Contains(t, body, "A new live session has been scheduled for your course.")
	assert.Contains(t, body, "Intro to Go")
	assert.Contains(t, body, "Week 1 Live Class")
	assert.Contains(t, body, "60 minutes")

	tutorBody := buildBody(testNotification(models.RoleTutor, false))
	assert.Contains(t, tutorBody, "Your live session has been scheduled.")

	rescheduledBody := buildBody(testNotification(models.RoleStudent, true))
	assert.Contains(t, rescheduledBody, "has been rescheduled")
}
