package email

import "context"

// Message is a single outbound email. Text is optional; providers fall back
// to HTML-only delivery when it is empty.
type Message struct {
	From        string
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Attachment is an inline file attached to a message, used for the
// calendar invites.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Sender delivers a message through a transactional email provider and
// returns the provider-assigned message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}
