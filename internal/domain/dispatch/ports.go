package dispatch

import "context"

// Transport is the mail transport handle produced by the transport
// selector. Implementations live in infra/smtp.
type Transport interface {
	// Verify performs a connectivity and authentication handshake without
	// submitting anything. A failure is a configuration error, distinct
	// from a delivery error: it is operator-actionable and not worth an
	// automatic retry.
	Verify(ctx context.Context) error

	// Send submits a composed message and returns the message identifier
	// recorded on the wire. Exactly one delivery attempt per call.
	Send(ctx context.Context, msg *Message) (string, error)
}

// Renderer turns a validated order record into the notification body pair.
// Implementations live in infra/render.
type Renderer interface {
	// Render produces a subject line, HTML body, and plain-text fallback
	// carrying the same facts. Pure apart from the current-time
	// substitution when the record has no timestamp.
	Render(rec *OrderRecord) (subject, html, text string, err error)
}
