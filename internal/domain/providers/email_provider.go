package providers

import "context"

// EmailMessage is one outbound email
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender defines the outbound email boundary. A send failure is final
// for that attempt; no retry is implemented by this core.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) (messageID string, err error)
}
