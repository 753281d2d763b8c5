package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	SendReceipt(ctx context.Context, toEmail, username string, purchases []models.Purchase) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendReceipt mails a plain-text order receipt listing every purchased game
// at the price actually paid.
func (e *emailService) SendReceipt(ctx context.Context, toEmail, username string, purchases []models.Purchase) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(username, toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = "Your game store receipt"
	message.AddPersonalizations(personalization)

	var body strings.Builder

	var total float64

	fmt.Fprintf(&body, "Hi %s,\n\nThanks for your purchase!\n\n", username)

	for _, p := range purchases {
		fmt.Fprintf(&body, "  %s - $%.2f\n", p.GameTitle, p.PricePaid)
		total += p.PricePaid
	}

	fmt.Fprintf(&body, "\nTotal: $%.2f\n\nYour games are now available in your library.\n", total)

	message.AddContent(mail.NewContent("text/plain", body.String()))

	response, err := e.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
