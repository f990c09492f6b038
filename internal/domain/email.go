package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the invitation email sent to a
// registered user.
type InvitationEmailData struct {
	Email       string
	Recipient   string
	InviterName string
	EventPlace  string
	EventDate   string
}

// GuestLinkEmailData holds data for the guest link email. Link is the full
// URL embedding the encrypted token.
type GuestLinkEmailData struct {
	Email      string
	GuestName  string
	EventPlace string
	EventDate  string
	Link       string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendGuestLink(ctx context.Context, data *GuestLinkEmailData) error
}
