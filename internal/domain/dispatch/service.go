package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderalert/internal/common"
)

// Mailbox is the fixed sender and recipient configuration a Service
// dispatches with. Loaded once at startup, read-only thereafter.
type Mailbox struct {
	FromName    string
	FromAddress string
	To          []string
	CC          []string
}

// Service orchestrates one dispatch: validate → render → verify → send.
// Each call is a single linear traversal; there is no internal retry and at
// most one delivery attempt per invocation. Callers that re-invoke with the
// same invoice number accept at-least-once delivery.
type Service struct {
	renderer  Renderer
	transport Transport
	mailbox   Mailbox
}

// NewService creates a new dispatch service.
func NewService(renderer Renderer, transport Transport, mailbox Mailbox) *Service {
	return &Service{
		renderer:  renderer,
		transport: transport,
		mailbox:   mailbox,
	}
}

// Dispatch turns one order record into one delivery attempt.
func (s *Service) Dispatch(ctx context.Context, rec *OrderRecord) (*Receipt, error) {
	start := time.Now()

	if missing := Validate(rec); len(missing) > 0 {
		return nil, common.NewValidationError(missing)
	}

	subject, html, text, err := s.renderer.Render(rec)
	if err != nil {
		return nil, fmt.Errorf("rendering notification: %w", err)
	}

	msg := &Message{
		FromName:    s.mailbox.FromName,
		FromAddress: s.mailbox.FromAddress,
		To:          s.mailbox.To,
		CC:          s.mailbox.CC,
		Subject:     subject,
		HTML:        html,
		Text:        text,
	}

	// Verification strictly precedes submission. A failed handshake never
	// reaches Send.
	if err := s.transport.Verify(ctx); err != nil {
		slog.Error("transport verification failed",
			"invoice", rec.InvoiceNumber.String(),
			"error", err,
		)
		return nil, fmt.Errorf("verifying transport: %w", err)
	}

	messageID, err := s.transport.Send(ctx, msg)
	if err != nil {
		slog.Error("notification delivery failed",
			"invoice", rec.InvoiceNumber.String(),
			"error", err,
			"duration", time.Since(start),
		)
		return nil, fmt.Errorf("submitting notification: %w", err)
	}

	slog.Info("notification dispatched",
		"invoice", rec.InvoiceNumber.String(),
		"message_id", messageID,
		"duration", time.Since(start),
	)

	return &Receipt{
		MessageID: messageID,
		Invoice:   rec.InvoiceNumber.String(),
	}, nil
}
