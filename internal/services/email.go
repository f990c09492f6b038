package services

import (
	"context"
	"fmt"
	"log"

	"sportteammanager/internal/domain"
	"sportteammanager/internal/metrics"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	metrics  *metrics.Metrics
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer. metrics may be nil.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, m *metrics.Metrics) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, metrics: m}
}

// SendInvitation notifies a registered user using the "invitation" template.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		s.metrics.IncEmailSent("invitation", "error")
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	s.metrics.IncEmailSent("invitation", "ok")
	log.Printf("[EMAIL] Invitation sent to %s", data.Email)
	return nil
}

// SendGuestLink sends a guest their personal link using the "guest_link" template.
func (s *emailService) SendGuestLink(ctx context.Context, data *domain.GuestLinkEmailData) error {
	if data == nil {
		return fmt.Errorf("guest link email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("guest_link", data)
	if err != nil {
		return fmt.Errorf("failed to render guest_link template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		s.metrics.IncEmailSent("guest_link", "error")
		return fmt.Errorf("failed to send guest link email: %w", err)
	}
	s.metrics.IncEmailSent("guest_link", "ok")
	log.Printf("[EMAIL] Guest link sent to %s", data.Email)
	return nil
}
