package livesession

import (
	"context"
	"log"

	"github.com/descmd1/lms-backend/internal/models"
	"github.com/descmd1/lms-backend/internal/notify"
)

// fanOut resolves the tutor and every enrolled student and hands one
// notification per recipient to the dispatcher. Delivery is fire-and-forget;
// any failure here is logged and never surfaced to the caller.
func (s *service) fanOut(ctx context.Context, session *models.LiveSession, courseTitle string, rescheduled bool) {
	details := notify.SessionDetails{
		Title:             session.Title,
		Description:       session.Description,
		ScheduledDateTime: session.ScheduledDateTime,
		Duration:          session.Duration,
		MaxParticipants:   session.MaxParticipants,
		CourseTitle:       courseTitle,
		IsRescheduled:     rescheduled,
	}

	tutor, err := s.userRepo.Get(ctx, session.TutorID)
	if err != nil {
		log.Printf("Error resolving tutor %s for session notification: %v", session.TutorID.Hex(), err)
	} else if tutor.Email != "" {
		s.dispatcher.Dispatch(notify.Notification{
			Email:   tutor.Email,
			Name:    tutor.Name,
			Role:    models.RoleTutor,
			Session: details,
		})
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, session.CourseID.Hex())
	if err != nil {
		log.Printf("Error listing enrollments for session notification: %v", err)
		return
	}

	studentIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		studentIDs = append(studentIDs, e.UserID.Hex())
	}

	students, err := s.userRepo.ListByIDs(ctx, studentIDs)
	if err != nil {
		log.Printf("Error resolving students for session notification: %v", err)
		return
	}

	sent := 0
	for _, student := range students {
		if student.Email == "" {
			continue
		}
		s.dispatcher.Dispatch(notify.Notification{
			Email:   student.Email,
			Name:    student.Name,
			Role:    models.RoleStudent,
			Session: details,
		})
		sent++
	}

	log.Printf("Live session notifications dispatched to %d students and 1 tutor", sent)
}
