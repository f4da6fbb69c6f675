package utils

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/descmd1/lms-backend/internal/config"
)

// SendEmail sends an HTML email using the provided SMTP configuration
func SendEmail(smtp config.SMTPConfig, to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", smtp.From)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}
