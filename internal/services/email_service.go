package services

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"weddinginvite/internal/rsvp"
)

// Notifier tells the couple that a guest confirmed.
type Notifier interface {
	NotifyConfirmation(ctx context.Context, c rsvp.Confirmation) error
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	dialer mailSender
	from   string
	to     string
	couple string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, notifyEmail, couple string) *EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return newEmailService(dialer, fromEmail, notifyEmail, couple)
}

func newEmailService(dialer mailSender, from, to, couple string) *EmailService {
	if from == "" {
		from = to
	}
	return &EmailService{dialer: dialer, from: from, to: to, couple: couple}
}

// NotifyConfirmation returns when the message is sent or ctx ends,
// whichever comes first.
func (s *EmailService) NotifyConfirmation(ctx context.Context, c rsvp.Confirmation) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Nueva confirmación: %s (%d)", c.DisplayName, c.MaxPases))

	body := fmt.Sprintf(`
		<h2>%s confirmó su asistencia</h2>
		<p>Código: <strong>%s</strong></p>
		<p>Pases: <strong>%d</strong></p>
		<p>%s</p>
	`, html.EscapeString(c.DisplayName), html.EscapeString(c.Code), c.MaxPases, html.EscapeString(s.couple))

	m.SetBody("text/html", body)

	err := withContext(ctx, func() error { return s.dialer.DialAndSend(m) })
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

// withContext runs fn in its own goroutine and stops waiting once ctx is
// done. fn keeps running until its own I/O gives up.
func withContext(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
