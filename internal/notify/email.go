package notify

import (
	"fmt"

	"github.com/descmd1/lms-backend/internal/models"
)

func buildSubject(n Notification) string {
	switch {
	case n.Session.IsRescheduled:
		return fmt.Sprintf("Live Session Rescheduled: %s", n.Session.Title)
	case n.Role == models.RoleTutor:
		return fmt.Sprintf("Live Session Scheduled: %s", n.Session.Title)
	default:
		return fmt.Sprintf("New Live Session Available: %s", n.Session.Title)
	}
}

func buildBody(n Notification) string {
	s := n.Session
	when := s.ScheduledDateTime.Format("Monday, January 2, 2006 at 3:04 PM MST")

	intro := "A new live session has been scheduled for your course."
	if n.Role == models.RoleTutor {
		intro = "Your live session has been scheduled."
	}
	if s.IsRescheduled {
		intro = "A live session you are part of has been rescheduled. Please note the new time below."
	}

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f9;
				color: #333;
				line-height: 1.6;
				margin: 0;
				padding: 0;
			}
			.container {
				max-width: 600px;
				margin: 20px auto;
				background: #ffffff;
				border-radius: 8px;
				box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1);
				overflow: hidden;
			}
			.header {
				background-color: #003366;
				color: #ffffff;
				padding: 20px;
				text-align: center;
			}
			.content {
				padding: 20px;
			}
			.details {
				background-color: #f4f4f9;
				border-radius: 5px;
				padding: 15px;
				margin-top: 15px;
			}
			.footer {
				background-color: #f4f4f9;
				color: #666;
				text-align: center;
				padding: 10px;
				font-size: 12px;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Live Session Notification</h1>
			</div>
			<div class="content">
				<p>Hi %s,</p>
				<p>%s</p>
				<div class="details">
					<p><strong>Course:</strong> %s</p>
					<p><strong>Session:</strong> %s</p>
					<p><strong>Description:</strong> %s</p>
					<p><strong>When:</strong> %s</p>
					<p><strong>Duration:</strong> %d minutes</p>
				</div>
			</div>
			<div class="footer">
				<p>&copy; LMS Backend. All rights reserved.</p>
			</div>
		</div>
	</body>
	</html>`, n.Name, intro, s.CourseTitle, s.Title, s.Description, when, s.Duration)
}
