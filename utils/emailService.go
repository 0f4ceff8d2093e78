package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"cardagency/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || from == "defaultSecret" {
		log.Println("Email sender not configured, skipping send")
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Card Agency <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outbound mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; background-color: #1A2B4C; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CARD AGENCY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Card Agency. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendStatusEmail notifies an applicant that their application was
// approved or rejected. Fire-and-forget: the caller does not wait and a
// failure only logs.
func SendStatusEmail(email, firstName, status string) {
	if email == "" {
		return
	}

	name := firstName
	if name == "" {
		name = "Applicant"
	}

	var subject, body string
	switch status {
	case "approved":
		subject = "Your credit card application has been approved"
		body = fmt.Sprintf(`<p>Dear %s,</p>
			<p>Good news! Your credit card application has been <span class="status-badge">APPROVED</span>.</p>
			<p>The issuing bank will contact you with the next steps.</p>`, name)
	case "rejected":
		subject = "Update on your credit card application"
		body = fmt.Sprintf(`<p>Dear %s,</p>
			<p>We are sorry to inform you that your credit card application was not approved this time.</p>
			<p>You are welcome to apply again after 90 days.</p>`, name)
	default:
		return
	}

	if err := SendEmail([]string{email}, subject, getEmailTemplate(subject, body)); err != nil {
		log.Printf("Error sending status email to %s: %v", email, err)
	}
}
