package notify

import (
	"log"
	"sync"
	"time"

	"github.com/descmd1/lms-backend/internal/config"
	"github.com/descmd1/lms-backend/internal/models"
	"github.com/descmd1/lms-backend/internal/utils"
)

// SessionDetails carries the session fields rendered into a notification.
type SessionDetails struct {
	Title             string
	Description       string
	ScheduledDateTime time.Time
	Duration          int
	MaxParticipants   int
	CourseTitle       string
	IsRescheduled     bool
}

// Notification is one outbound message to a single recipient.
type Notification struct {
	Email   string
	Name    string
	Role    models.UserRole
	Session SessionDetails
}

//go:generate mockgen -package=mocks -destination=mocks/mock_dispatcher.go github.com/descmd1/lms-backend/internal/notify Dispatcher

// Dispatcher accepts notifications for delivery. Dispatch is one-way: it
// enqueues and returns, and delivery failures are never reported back to the
// caller.
type Dispatcher interface {
	Dispatch(n Notification)
}

// EmailDispatcher delivers notifications over SMTP from a background worker.
type EmailDispatcher struct {
	smtp  config.SMTPConfig
	queue chan Notification
	done  chan struct{}
	once  sync.Once
}

func NewEmailDispatcher(smtp config.SMTPConfig) *EmailDispatcher {
	d := &EmailDispatcher{
		smtp:  smtp,
		queue: make(chan Notification, 256),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues the notification without blocking. When the queue is
// full the notification is dropped and logged; callers never observe the
// outcome either way.
func (d *EmailDispatcher) Dispatch(n Notification) {
	select {
	case d.queue <- n:
	default:
		log.Printf("Notification queue full, dropping email to %s", n.Email)
	}
}

// Close stops the worker after draining queued notifications.
func (d *EmailDispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *EmailDispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		subject := buildSubject(n)
		body := buildBody(n)
		if err := utils.SendEmail(d.smtp, n.Email, subject, body); err != nil {
			log.Printf("Error sending session notification to %s: %v", n.Email, err)
		}
	}
}
