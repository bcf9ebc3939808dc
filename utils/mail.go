package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func senderAddress() string {
	if sender := os.Getenv("MAIL_SENDER"); sender != "" {
		return sender
	}
	return "donotreply@gonotes.app"
}

// SendVerificationEmail delivers the confirmation link. Delivery failure is
// reported to the caller but never rolls back the registration itself.
func SendVerificationEmail(email string, link string) error {
	from := mail.NewEmail("Gonotes", senderAddress())
	subject := "Confirm your email address"

	to := mail.NewEmail("", email)

	plainTextContent := fmt.Sprintf("Welcome to Gonotes! Confirm your email address by opening this link: %s\nThe link expires in one hour.", link)
	htmlContent := fmt.Sprintf("<p>Welcome to Gonotes!</p><p><a href=%q>Confirm your email address</a>. The link expires in one hour.</p>", link)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Println("Email rejected, status:", response.StatusCode, " body:", response.Body)
		return fmt.Errorf("mail delivery failed with status %d", response.StatusCode)
	}

	log.Println("Verification email sent to user:", email)
	return nil
}
