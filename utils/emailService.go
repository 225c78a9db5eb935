package utils

import (
	"fmt"
	"log"
	"lot/config"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping send")
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LOT Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendEnrollmentEmail sends the course welcome email after enrollment
func SendEnrollmentEmail(email, userName, courseTitle string) error {
	subject := fmt.Sprintf("Welcome to %s", courseTitle)
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #333333; text-align: center;">Welcome to %s!</h2>
				<p style="font-size: 16px; color: #555555;">Hi %s,</p>
				<p style="font-size: 16px; color: #555555;">Congratulations on enrolling! Head over to your dashboard to start learning.</p>
				<p style="text-align: center; margin-top: 30px;">
					<a href="%s" style="padding: 12px 24px; background-color: #00004D; color: #FFFFFF; text-decoration: none; border-radius: 4px;">Go to Dashboard</a>
				</p>
			</div>
		</body>
	</html>
	`, courseTitle, userName, config.AppConfig.DashboardURL)

	return SendEmail([]string{email}, subject, body)
}
