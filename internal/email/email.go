package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/mail"
	"net/smtp"
	"strings"
	"text/template"

	"eventSignup/internal/config"
)

// Service sends transactional email over SMTP. When the transport is not
// configured (Enabled=false) every send is a logged no-op that succeeds.
type Service struct {
	cfg config.SMTP
	log *slog.Logger
}

const confirmationBody = `Hi,

You are registered for {{.Title}}.

When:  {{.StartsAt}}
Where: {{.Location}}

Event page: {{.Link}}

See you there!
`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationBody))

func New(cfg config.SMTP, log *slog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender address in config: %w", err)
		}
	}

	return &Service{
		cfg: cfg,
		log: log.With(slog.String("component", "email")),
	}, nil
}

// SendRegistrationConfirmation composes and sends the plain-text confirmation
// for a successful event registration.
func (s *Service) SendRegistrationConfirmation(to, eventTitle, startsAt, location, link string) error {
	if err := validateAddress(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	if !s.cfg.Enabled {
		s.log.Info("email disabled, skipping confirmation",
			slog.String("to", to),
			slog.String("event", eventTitle),
		)

		return nil
	}

	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, struct {
		Title, StartsAt, Location, Link string
	}{eventTitle, startsAt, location, link})
	if err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	subject := fmt.Sprintf("You're registered: %s", eventTitle)

	if err = s.send(to, subject, body.String()); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}

	s.log.Info("confirmation email sent",
		slog.String("to", to),
		slog.String("event", eventTitle),
	)

	return nil
}

func (s *Service) send(to, subject, body string) error {
	headers := []string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}

	var msg bytes.Buffer
	msg.WriteString(strings.Join(headers, "\r\n"))
	msg.WriteString("\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	if s.cfg.StartTLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = wc.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = wc.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// validateAddress rejects malformed addresses and header injection attempts.
func validateAddress(address string) error {
	addr, err := mail.ParseAddress(address)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}

	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("address contains newline characters")
	}

	return nil
}
