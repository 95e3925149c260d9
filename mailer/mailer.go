package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/Nellmory/MehaAndShubi/models"
)

// Mailer delivers a single message. Implementations must be safe for
// concurrent use; callers treat delivery as fire-and-forget.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Disabled drops every message. Used when SMTP is not configured.
type Disabled struct{}

func (Disabled) Send(to, subject, body string) error { return nil }

// SendRegistrationEmail greets a new user on a detached goroutine.
// Delivery failures are logged and swallowed.
func SendRegistrationEmail(m Mailer, user *models.User) {
	if user.Email == "" {
		return
	}
	to := user.Email
	body := fmt.Sprintf("Hello %s,\n\nWelcome to the MehaAndShubi shop! Your account is ready.\n", user.Username)
	go func() {
		if err := m.Send(to, "Welcome to MehaAndShubi!", body); err != nil {
			log.Printf("failed to send registration email to %s: %v", to, err)
		}
	}()
}

// SendOrderConfirmationEmail confirms a placed order on a detached
// goroutine. Delivery failures are logged and swallowed.
func SendOrderConfirmationEmail(m Mailer, user *models.User, order *models.Order) {
	if user.Email == "" {
		return
	}
	to := user.Email
	subject := fmt.Sprintf("Order #%d confirmation", order.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour order #%d for %s has been received and is awaiting payment.\nShipping address: %s\n",
		user.Username, order.ID, order.TotalPrice.StringFixed(2), order.ShippingAddress,
	)
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Printf("failed to send order confirmation email for order %d: %v", order.ID, err)
		}
	}()
}
