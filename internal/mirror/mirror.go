// Package mirror copies finalized tickets to the remote order system.
//
// The kiosk's own database is authoritative. A mirror only forwards tickets
// so the bakery can see kiosk orders; a failed publish never undoes a sale.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// Conn is the subset of *nats.Conn the mirror publishes through.
type Conn interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// Message is the payload published for every finalized ticket.
type Message struct {
	KioskID string        `json:"kiosk_id"`
	Ticket  domain.Ticket `json:"ticket"`
}

// NATSMirror publishes tickets to a NATS subject.
type NATSMirror struct {
	conn    Conn
	subject string
	kioskID string
	timeout time.Duration
}

// Compile-time check that NATSMirror implements domain.Mirror.
var _ domain.Mirror = (*NATSMirror)(nil)

// NewNATSMirror creates a mirror over an existing connection.
func NewNATSMirror(conn Conn, subject, kioskID string, timeout time.Duration) *NATSMirror {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NATSMirror{
		conn:    conn,
		subject: subject,
		kioskID: kioskID,
		timeout: timeout,
	}
}

// Connect dials NATS and returns a mirror plus a function that drains the
// connection on shutdown.
func Connect(url, subject, kioskID string, timeout time.Duration, logger *slog.Logger) (*NATSMirror, func(), error) {
	conn, err := nats.Connect(url,
		nats.Name("cakekiosk-"+kioskID),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("Order mirror connected", "url", conn.ConnectedUrl(), "subject", subject)

	return NewNATSMirror(conn, subject, kioskID, timeout), func() {
		if err := conn.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", "error", err)
		}
	}, nil
}

// Publish sends the ticket with a core NATS publish and waits for the server
// to acknowledge the flush. The Nats-Msg-Id header is only acted on by a
// JetStream stream capturing the subject, which then stores a ticket
// published twice only once. Plain subscribers receive every publish and
// should key on kiosk_id and ticket.id.
func (m *NATSMirror) Publish(ctx context.Context, t domain.Ticket) error {
	data, err := json.Marshal(Message{KioskID: m.kioskID, Ticket: t})
	if err != nil {
		return fmt.Errorf("failed to encode ticket %d: %w", t.ID, err)
	}

	msg := nats.NewMsg(m.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, m.kioskID+"-"+strconv.FormatInt(t.ID, 10))

	if err := m.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish ticket %d: %w", t.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := m.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush ticket %d: %w", t.ID, err)
	}
	return nil
}

// Disabled is used when no remote system is configured.
type Disabled struct{}

// Publish does nothing.
func (Disabled) Publish(context.Context, domain.Ticket) error {
	return nil
}
